// Package progtest contains utilities for testing [prog.Run].
package progtest

import (
	"io"
	"os"
	"testing"

	"github.com/fatih/color"

	"src.shprintf.dev/pkg/env"
	"src.shprintf.dev/pkg/prog"
	"src.shprintf.dev/pkg/testutil"
)

// Result is the outcome of running the program.
type Result struct {
	Exit   int
	Stdout string
	Stderr string
}

// Run runs prog.Run with the given arguments, not including the program
// name, and captures its output through pipes. The configuration directory
// is pointed at an empty temporary directory so that no user configuration
// is read.
func Run(t *testing.T, args ...string) Result {
	t.Helper()
	testutil.Setenv(t, env.XDG_CONFIG_HOME, t.TempDir())
	testutil.Set(t, &color.NoColor, color.NoColor)

	r1, w1 := testutil.MustPipe()
	r2, w2 := testutil.MustPipe()
	// Read concurrently so that the program doesn't block on a full pipe.
	stdout := readAsync(r1)
	stderr := readAsync(r2)

	exit := prog.Run([3]*os.File{os.Stdin, w1, w2}, append([]string{"shprintf"}, args...))
	w1.Close()
	w2.Close()
	return Result{exit, <-stdout, <-stderr}
}

func readAsync(r io.ReadCloser) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- string(testutil.MustReadAllAndClose(r))
	}()
	return ch
}
