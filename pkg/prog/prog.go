// Package prog provides the entry point of shprintf, a standalone printf
// that follows the shell builtin.
package prog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"src.shprintf.dev/pkg/buildinfo"
	"src.shprintf.dev/pkg/builtin"
	"src.shprintf.dev/pkg/diag"
	"src.shprintf.dev/pkg/logutil"
	"src.shprintf.dev/pkg/printf"
	"src.shprintf.dev/pkg/rc"
	"src.shprintf.dev/pkg/shquote"
	"src.shprintf.dev/pkg/store"
	"src.shprintf.dev/pkg/sys"
	"src.shprintf.dev/pkg/vars"
)

var logger = logutil.GetLogger("[prog] ")

// Flags keeps command-line flags.
type Flags struct {
	RC   string
	NoRc bool

	DB, Log string

	Dump, UnsafeArith, BuildInfo bool

	ListFormats, Forget bool

	Var string
}

func newCommand(fds [3]*os.File, f *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shprintf [flags] FORMAT [ARG...]",
		Short: "Format and print arguments like the printf shell builtin",
		Long: "shprintf formats its arguments under control of FORMAT, like the\n" +
			"printf builtin of POSIX shells. Exit status is 1 when an argument\n" +
			"can't be formatted and 2 when FORMAT is invalid.",
		Version:       buildinfo.Value.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(fds, f, cmd, args)
		},
	}
	cmd.SetOut(fds[1])
	cmd.SetErr(fds[2])
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return BadUsage(err.Error())
	})

	fs := cmd.Flags()
	// Everything after FORMAT is an argument, even if it starts with "-".
	fs.SetInterspersed(false)
	fs.StringVar(&f.RC, "rc", "", "path to the configuration file")
	fs.BoolVar(&f.NoRc, "norc", false, "don't read the configuration file")
	fs.StringVar(&f.DB, "db", "", "path to a database of compiled formats")
	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.Dump, "dump", false, "show the compiled FORMAT instead of running it")
	fs.BoolVar(&f.UnsafeArith, "unsafe-arith", false, "allow indexed variables with -v")
	fs.BoolVar(&f.ListFormats, "list-formats", false, "list the formats in the database and quit")
	fs.BoolVar(&f.Forget, "forget", false, "remove the FORMAT arguments from the database and quit")
	fs.StringVarP(&f.Var, "var", "v", "", "assign the output to `NAME` and show it")
	return cmd
}

// Run parses command-line flags and runs printf. It returns the exit status
// of the program.
func Run(fds [3]*os.File, args []string) int {
	color.NoColor = !sys.IsATTY(fds[2].Fd())

	f := &Flags{}
	cmd := newCommand(fds, f)
	cmd.SetArgs(args[1:])
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var bu badUsageError
	var ee exitError
	switch {
	case errors.As(err, &bu):
		fmt.Fprint(fds[2], cmd.UsageString())
	case errors.As(err, &ee):
		return ee.exit
	}
	return 2
}

func run(fds [3]*os.File, f *Flags, cmd *cobra.Command, args []string) error {
	if f.BuildInfo {
		buildinfo.Value.Show(fds[1])
		return nil
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	if fs.Changed("db") {
		cfg.DB = f.DB
	}
	if fs.Changed("log") {
		cfg.Log = f.Log
	}
	if fs.Changed("unsafe-arith") {
		cfg.UnsafeArith = f.UnsafeArith
	}

	if cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open log file:", err)
		}
	}

	if f.ListFormats || f.Forget {
		return manageDB(fds[1], f, cfg.DB, args)
	}

	var backing printf.Backing
	if cfg.DB != "" {
		st, err := store.NewStore(cfg.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open database:", err)
			fmt.Fprintln(fds[2], "Continuing without it.")
		} else {
			defer st.Close()
			backing = st
		}
	}

	env := vars.FromEnviron(os.Environ())
	p := builtin.NewPrintf(printf.NewCache(backing), printf.SystemClock{}, env,
		builtin.Options{UnsafeArith: cfg.UnsafeArith})

	if f.Dump {
		return dump(fds, p, args)
	}

	// The builtin must not take FORMAT as an option.
	opts := []string{"--"}
	if f.Var != "" {
		opts = []string{"-v", f.Var, "--"}
	}
	args = append(opts, args...)
	status := p.Run(builtin.NewCmdLine("printf", args), fds[1], fds[2])
	if status == 0 && f.Var != "" {
		showVar(fds[1], env, f.Var)
	}
	return Exit(status)
}

func loadConfig(f *Flags) (*rc.Config, error) {
	if f.NoRc {
		return &rc.Config{}, nil
	}
	path, mustExist := f.RC, true
	if path == "" {
		var err error
		path, err = rc.DefaultPath()
		if err != nil {
			logger.Println("no default configuration file:", err)
			return &rc.Config{}, nil
		}
		mustExist = false
	}
	cfg, err := rc.Load(path, mustExist)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	logger.Printf("configuration from %s: %+v", path, *cfg)
	return cfg, nil
}

// Handles --list-formats and --forget.
func manageDB(w io.Writer, f *Flags, dbPath string, args []string) error {
	switch {
	case f.ListFormats && f.Forget:
		return BadUsage("--list-formats and --forget can't be used together")
	case dbPath == "":
		return BadUsage("--list-formats and --forget need --db or db in the configuration")
	case f.ListFormats && len(args) > 0:
		return BadUsage("--list-formats takes no arguments")
	case f.Forget && len(args) == 0:
		return BadUsage("--forget requires at least one FORMAT")
	}
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer st.Close()

	if f.ListFormats {
		texts, err := st.Texts()
		if err != nil {
			return err
		}
		for _, text := range texts {
			fmt.Fprintln(w, shquote.Quote(text))
		}
		return nil
	}
	for _, text := range args {
		if err := st.Delete(text); err != nil {
			return err
		}
		logger.Printf("forgot format %q", text)
	}
	return nil
}

func dump(fds [3]*os.File, p *builtin.Printf, args []string) error {
	if len(args) != 1 {
		return BadUsage("--dump requires exactly one FORMAT")
	}
	f, err := p.Compile(args[0])
	if err != nil {
		diag.ShowError(fds[2], err)
		return Exit(printf.ExitStatus(err))
	}
	pretty.Fprintf(fds[1], "%# v\n", f.Directives)
	return nil
}

// Shows the value of a variable assigned with -v.
func showVar(w io.Writer, env *vars.Store, name string) {
	t, err := vars.ParseTarget(name)
	if err != nil {
		return
	}
	v, _ := t.Var(env).Get()
	fmt.Fprintf(w, "%s=%s\n", t, shquote.Quote(v))
}

// BadUsage returns a special error that may be returned by the command. It
// causes Run to print out a message, the usage information and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by the command. It causes
// Run to exit with the given code without printing any error messages.
// Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
