// Package builtin implements the printf builtin on top of package printf.
package builtin

import (
	"io"

	"src.shprintf.dev/pkg/diag"
	"src.shprintf.dev/pkg/getopt"
	"src.shprintf.dev/pkg/logutil"
	"src.shprintf.dev/pkg/printf"
	"src.shprintf.dev/pkg/vars"
)

var logger = logutil.GetLogger("[builtin] ")

// UsageError is an error in how a builtin is invoked.
type UsageError = diag.Error[UsageErrorTag]

// UsageErrorTag parameterizes [diag.Error] to define [UsageError].
type UsageErrorTag struct{}

func (UsageErrorTag) ErrorTag() string { return "usage error" }

// StatusUsage is the exit status for usage errors.
const StatusUsage = 2

// Options configures the printf builtin.
type Options struct {
	// Allow indexed -v targets such as a[i].
	UnsafeArith bool
}

// Printf is the printf builtin. It keeps the compiled formats and the time it
// was created across invocations.
type Printf struct {
	cache *printf.Cache
	ev    *printf.Evaluator
	vars  *vars.Store
	opts  Options
}

// NewPrintf creates the printf builtin. Formats are compiled through cache,
// -v assigns to variables in store, and TZ is looked up in store.
func NewPrintf(cache *printf.Cache, clock printf.Clock, store *vars.Store, opts Options) *Printf {
	return &Printf{cache, printf.NewEvaluator(clock, store), store, opts}
}

var optionSpecs = []*getopt.Spec{{Short: 'v', Arity: getopt.RequiredArgument}}

// Run runs printf with the words of cl and returns the exit status. The
// output goes to stdout, or to a variable if -v is given; errors are shown
// on stderr.
func (p *Printf) Run(cl *CmdLine, stdout, stderr io.Writer) int {
	output, target, err := p.run(cl)
	if err != nil {
		diag.ShowError(stderr, err)
		return exitStatus(err)
	}
	if target != nil {
		if err := target.Var(p.vars).Set(output); err != nil {
			diag.Complainf(stderr, "printf: can't assign to %s: %v", target, err)
			return printf.StatusEvalError
		}
		logger.Printf("assigned %d bytes to %s", len(output), target)
		return printf.StatusOK
	}
	if _, err := io.WriteString(stdout, output); err != nil {
		diag.Complainf(stderr, "printf: write error: %v", err)
		return printf.StatusEvalError
	}
	return printf.StatusOK
}

func (p *Printf) run(cl *CmdLine) (string, *vars.Target, error) {
	opts, operands, err := getopt.Parse(cl.Texts(), optionSpecs)
	nOpts := len(cl.Words) - len(operands)
	if err != nil {
		return "", nil, p.usageError(cl, cl.wordsRange(0, nOpts-1), err.Error())
	}

	if len(operands) == 0 {
		return "", nil, p.usageError(cl, cl.wordsRange(nOpts, nOpts),
			"requires a format string")
	}

	f, err := p.cache.Get(operands[0])
	if err != nil {
		return "", nil, err
	}

	args := make([]printf.Arg, len(operands)-1)
	for i := range args {
		w := cl.Words[nOpts+1+i]
		args[i] = printf.Arg{Value: w.Text, Context: cl.Context(w)}
	}
	output, err := p.ev.Eval(f, args)
	if err != nil {
		return "", nil, err
	}

	// The -v target is only checked once the output is known.
	var target *vars.Target
	if opt, ok := opts.Get('v'); ok {
		t, err := p.parseTarget(cl, opt)
		if err != nil {
			return "", nil, err
		}
		target = &t
	}
	return output, target, nil
}

func (p *Printf) parseTarget(cl *CmdLine, opt *getopt.Option) (vars.Target, error) {
	r := cl.Words[opt.Word]
	t, err := vars.ParseTarget(opt.Argument)
	if err != nil {
		return vars.Target{}, p.usageError(cl, r, "invalid -v expression")
	}
	if t.Indexed && !p.opts.UnsafeArith {
		return vars.Target{}, p.usageError(cl, r,
			"-v expected a variable name. unsafe arithmetic allows expressions")
	}
	return t, nil
}

func (p *Printf) usageError(cl *CmdLine, r diag.Ranger, msg string) error {
	return &UsageError{Message: msg, Context: *cl.Context(r)}
}

func exitStatus(err error) int {
	if _, ok := diag.UnpackError[UsageErrorTag](err); ok {
		return StatusUsage
	}
	return printf.ExitStatus(err)
}

// Compile compiles text through the builtin's cache.
func (p *Printf) Compile(text string) (*printf.Format, error) {
	return p.cache.Get(text)
}
