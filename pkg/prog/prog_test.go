package prog_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	_ "time/tzdata"

	"src.shprintf.dev/pkg/buildinfo"
	"src.shprintf.dev/pkg/logutil"
	"src.shprintf.dev/pkg/prog/progtest"
	"src.shprintf.dev/pkg/shquote"
	"src.shprintf.dev/pkg/store"
	"src.shprintf.dev/pkg/testutil"
)

type result = progtest.Result

var runTests = []struct {
	name       string
	args       []string
	wantExit   int
	wantStdout string
	// Substrings of stdout and stderr.
	wantStdoutContains []string
	wantStderrContains []string
}{
	{
		name:       "output",
		args:       []string{"%s-%d\n", "a", "5", "b", "6"},
		wantStdout: "a-5\nb-6\n",
	},
	{
		name:       "arguments that look like flags",
		args:       []string{"%s\n", "-x", "--y"},
		wantStdout: "-x\n--y\n",
	},
	{
		name:       "format that looks like a flag",
		args:       []string{"--", "-%s-\n", "x"},
		wantStdout: "-x-\n",
	},
	{
		name:               "no format",
		wantExit:           2,
		wantStderrContains: []string{"requires a format string"},
	},
	{
		name:               "parse error",
		args:               []string{"%-f", "1"},
		wantExit:           2,
		wantStderrContains: []string{"floating point conversions are not supported"},
	},
	{
		name:               "evaluation error",
		args:               []string{"%d", "x"},
		wantExit:           1,
		wantStderrContains: []string{`printf expected an integer, got "x"`},
	},
	{
		name:               "bad flag",
		args:               []string{"--bad", "%s"},
		wantExit:           2,
		wantStderrContains: []string{"unknown flag: --bad", "Usage:"},
	},
	{
		name:               "help",
		args:               []string{"--help"},
		wantStdoutContains: []string{"Usage:", "shprintf [flags] FORMAT [ARG...]", "--unsafe-arith"},
	},
	{
		name:               "version",
		args:               []string{"--version"},
		wantStdoutContains: []string{"shprintf version " + buildinfo.Value.Version},
	},
	{
		name:               "build info",
		args:               []string{"--buildinfo"},
		wantStdoutContains: []string{"Version: " + buildinfo.Value.Version, "Go version: "},
	},
	{
		name:       "assign variable",
		args:       []string{"-v", "x", "%s|", "a b"},
		wantStdout: "x='a b|'\n",
	},
	{
		name:               "indexed variable",
		args:               []string{"-v", "a[1]", "%s", "q"},
		wantExit:           2,
		wantStderrContains: []string{"unsafe arithmetic allows expressions"},
	},
	{
		name:       "indexed variable with unsafe arithmetic",
		args:       []string{"--unsafe-arith", "-v", "a[1]", "%s", "q"},
		wantStdout: "a[1]=q\n",
	},
	{
		name:               "dump",
		args:               []string{"--dump", "<%5s>"},
		wantStdoutContains: []string{"printf.Literal", "printf.Percent", "printf.NumSpec"},
	},
	{
		name:               "dump without format",
		args:               []string{"--dump"},
		wantExit:           2,
		wantStderrContains: []string{"--dump requires exactly one FORMAT"},
	},
	{
		name:               "dump with bad format",
		args:               []string{"--dump", "%c"},
		wantExit:           2,
		wantStderrContains: []string{"single character conversion %c is not supported"},
	},
	{
		name:               "missing rc file",
		args:               []string{"--rc", "/does/not/exist.yaml", "%s"},
		wantExit:           2,
		wantStderrContains: []string{"cannot read configuration"},
	},
}

func TestRun(t *testing.T) {
	for _, test := range runTests {
		t.Run(test.name, func(t *testing.T) {
			r := progtest.Run(t, test.args...)
			if r.Exit != test.wantExit {
				t.Errorf("got exit %d, want %d; stderr: %q", r.Exit, test.wantExit, r.Stderr)
			}
			if test.wantStdoutContains == nil && r.Stdout != test.wantStdout {
				t.Errorf("got stdout %q, want %q", r.Stdout, test.wantStdout)
			}
			for _, s := range test.wantStdoutContains {
				if !strings.Contains(r.Stdout, s) {
					t.Errorf("stdout %q does not contain %q", r.Stdout, s)
				}
			}
			for _, s := range test.wantStderrContains {
				if !strings.Contains(r.Stderr, s) {
					t.Errorf("stderr %q does not contain %q", r.Stderr, s)
				}
			}
		})
	}
}

func TestRun_RcFile(t *testing.T) {
	rcPath := filepath.Join(t.TempDir(), "rc.yaml")
	if err := os.WriteFile(rcPath, []byte("unsafe-arith: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	args := []string{"-v", "a[k]", "%s", "v"}

	r := progtest.Run(t, append([]string{"--rc", rcPath}, args...)...)
	checkResult(t, r, result{Stdout: "a[k]=v\n"})

	// Flags override the configuration.
	r = progtest.Run(t, append([]string{"--rc", rcPath, "--unsafe-arith=false"}, args...)...)
	if r.Exit != 2 {
		t.Errorf("with --unsafe-arith=false, got exit %d, want 2", r.Exit)
	}

	r = progtest.Run(t, append([]string{"--rc", rcPath, "--norc"}, args...)...)
	if r.Exit != 2 {
		t.Errorf("with --norc, got exit %d, want 2", r.Exit)
	}
}

func TestRun_DB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "formats.db")
	for i := 0; i < 2; i++ {
		r := progtest.Run(t, "--db", dbPath, "[%5s]\n", "x")
		checkResult(t, r, result{Stdout: "[    x]\n"})
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	texts, err := st.Texts()
	if err != nil || len(texts) != 1 || texts[0] != "[%5s]\n" {
		t.Errorf("stored formats = %q, %v", texts, err)
	}
}

func TestRun_BadDB(t *testing.T) {
	dir := t.TempDir()
	r := progtest.Run(t, "--db", dir, "%s\n", "ok")
	if r.Exit != 0 || r.Stdout != "ok\n" {
		t.Errorf("got (%d, %q), want success without the database", r.Exit, r.Stdout)
	}
	if !strings.Contains(r.Stderr, "Warning: cannot open database") {
		t.Errorf("stderr %q has no warning", r.Stderr)
	}
}

func TestRun_ListAndForgetFormats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "formats.db")
	progtest.Run(t, "--db", dbPath, "%s|", "a")
	progtest.Run(t, "--db", dbPath, "%d\n", "1")

	r := progtest.Run(t, "--db", dbPath, "--list-formats")
	checkResult(t, r, result{
		Stdout: shquote.Quote("%d\n") + "\n" + shquote.Quote("%s|") + "\n"})

	r = progtest.Run(t, "--db", dbPath, "--forget", "%s|", "not stored")
	checkResult(t, r, result{})

	r = progtest.Run(t, "--db", dbPath, "--list-formats")
	checkResult(t, r, result{Stdout: shquote.Quote("%d\n") + "\n"})
}

func TestRun_ListAndForgetFormats_BadUsage(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "formats.db")
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--list-formats"}, "need --db"},
		{[]string{"--forget", "%s"}, "need --db"},
		{[]string{"--db", dbPath, "--list-formats", "%s"}, "takes no arguments"},
		{[]string{"--db", dbPath, "--forget"}, "requires at least one FORMAT"},
		{[]string{"--db", dbPath, "--forget", "--list-formats"}, "can't be used together"},
	}
	for _, test := range tests {
		r := progtest.Run(t, test.args...)
		if r.Exit != 2 || !strings.Contains(r.Stderr, test.want) {
			t.Errorf("%q -> (%d, %q), want status 2 and %q", test.args, r.Exit, r.Stderr, test.want)
		}
	}
}

func TestRun_Log(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log")
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })
	r := progtest.Run(t, "--log", logPath, "%s\n", "x")
	checkResult(t, r, result{Stdout: "x\n"})

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[printf] ") || !strings.Contains(string(content), "compiled") {
		t.Errorf("log %q has no entry from printf", content)
	}
}

func TestRun_ExportedTZ(t *testing.T) {
	testutil.Setenv(t, "TZ", "Asia/Tokyo")
	r := progtest.Run(t, "%(%H:%M)T\n", "0")
	checkResult(t, r, result{Stdout: "09:00\n"})
}

func TestRun_NoColorOnPipe(t *testing.T) {
	r := progtest.Run(t, "%f")
	if strings.Contains(r.Stderr, "\033[31") {
		t.Errorf("stderr on a pipe is colored: %q", r.Stderr)
	}
}

func checkResult(t *testing.T, got, want result) {
	t.Helper()
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
