// Shprintf formats and prints its arguments like the printf builtin of POSIX
// shells, with recycling of the format, %b, %q and %(strftime)T.
package main

import (
	"os"

	"src.shprintf.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run([3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args))
}
