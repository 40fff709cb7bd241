package printf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/ncruces/go-strftime"

	"src.shprintf.dev/pkg/diag"
	"src.shprintf.dev/pkg/env"
	"src.shprintf.dev/pkg/shquote"
)

// Arg is a positional argument of printf.
type Arg struct {
	Value string
	// Where the argument came from; nil if unknown.
	Context *diag.Context
}

// Env gives access to the shell variables the evaluator depends on.
type Env interface {
	// LookupExported returns the value of an exported variable.
	LookupExported(name string) (string, bool)
}

// Evaluator applies compiled formats to arguments.
type Evaluator struct {
	clock   Clock
	env     Env
	started time.Time
}

// NewEvaluator creates an Evaluator. The time of its creation is what the
// special time argument -2 refers to. The env may be nil.
func NewEvaluator(clock Clock, env Env) *Evaluator {
	return &Evaluator{clock, env, clock.Now()}
}

// Eval applies f to args and returns the output. The directives of f are
// applied repeatedly while there are unconsumed arguments, as long as each
// round consumes at least one of them.
func (ev *Evaluator) Eval(f *Format, args []Arg) (string, error) {
	st := &evalState{ev: ev, f: f, args: args}
	for {
		before := st.next
		for _, d := range f.Directives {
			if err := d.accept(st); err != nil {
				return "", err
			}
			if st.stopped {
				break
			}
		}
		if st.stopped || st.next >= len(args) || st.next == before {
			break
		}
	}
	return st.out.String(), nil
}

type evalState struct {
	ev   *Evaluator
	f    *Format
	args []Arg
	// Index of the next unconsumed argument.
	next int
	out  strings.Builder
	// Set when %b sees \c.
	stopped bool
}

// Returns the next argument, or a zero Arg and false if all of them have
// been consumed.
func (st *evalState) nextArg() (Arg, bool) {
	if st.next < len(st.args) {
		st.next++
		return st.args[st.next-1], true
	}
	return Arg{}, false
}

// Returns the context to blame for a bad value: the argument's own context
// if it came from an argument, the given part of the format otherwise.
func (st *evalState) blame(arg Arg, present bool, fallback diag.Ranger) *diag.Context {
	if present && arg.Context != nil {
		return arg.Context
	}
	return st.f.Context(fallback)
}

func (st *evalState) errorf(ctx *diag.Context, format string, args ...any) error {
	return &EvalError{Message: fmt.Sprintf(format, args...), Context: *ctx}
}

func (st *evalState) literal(d *Literal) error {
	s, _ := DecodeToken(d.Token)
	st.out.WriteString(s)
	return nil
}

func (st *evalState) percent(d *Percent) error {
	width, err := st.spec(d.Width, "width")
	if err != nil {
		return err
	}
	precision, err := st.spec(d.Precision, "precision")
	if err != nil {
		return err
	}

	arg, present := st.nextArg()
	s := arg.Value
	signed := false

	switch verb := d.Verb(); verb {
	case 's':
		s = truncate(s, precision)
	case 'q':
		s = shquote.Quote(s)
	case 'b':
		s, st.stopped = DecodeEcho(s)
	case 'd', 'i', 'o', 'u', 'x', 'X', 'T':
		var n int64
		if verb == 'T' && !present {
			// No argument means the current time. An empty argument is 0,
			// like for other integer conversions.
			n = -1
		} else {
			var ok bool
			if n, ok = parseInteger(s); !ok {
				return st.errorf(st.blame(arg, present, d.Conv),
					"printf expected an integer, got %q", s)
			}
		}
		switch verb {
		case 'd', 'i':
			s = strconv.FormatInt(n, 10)
			signed = true
		case 'T':
			s = truncate(st.formatTime(d.TimeLayout(), n), precision)
		default:
			if n < 0 {
				return st.errorf(st.f.Context(d.Conv),
					"can't format negative number %d with %%%c", n, verb)
			}
			s = formatUnsigned(uint64(n), verb)
		}
	default:
		panic(fmt.Sprintf("unexpected conversion %q survived compilation", verb))
	}

	st.out.WriteString(pad(s, width, d, signed))
	return nil
}

// Resolves a width or precision to a number, -1 if it is absent.
func (st *evalState) spec(s Spec, what string) (int, error) {
	switch s := s.(type) {
	case nil:
		return -1, nil
	case *DotSpec:
		return 0, nil
	case *NumSpec:
		return st.specValue(s.Token.Val, what, st.f.Context(s))
	case *StarSpec:
		arg, present := st.nextArg()
		return st.specValue(arg.Value, what, st.blame(arg, present, s))
	default:
		panic(fmt.Sprintf("unexpected spec type %T", s))
	}
}

// Widths and precisions are bounded to 32 bits like the C int they stand for.
func (st *evalState) specValue(text, what string, blame *diag.Context) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err == nil {
		var i int32
		if i, err = safecast.Conv[int32](n); err == nil {
			return int(i), nil
		}
	}
	return 0, st.errorf(blame, "printf got invalid %s %q", what, text)
}

func (st *evalState) formatTime(layout string, n int64) string {
	tz, exported := "", false
	if st.ev.env != nil {
		tz, exported = st.ev.env.LookupExported(env.TZ)
	}
	loc, err := st.ev.clock.SetTimezone(tz, exported)
	if err != nil {
		logger.Printf("timezone %q: %v; using %v", tz, err, loc)
	}

	var t time.Time
	switch n {
	case -1:
		t = st.ev.clock.Now()
	case -2:
		t = st.ev.started
	default:
		t = time.Unix(n, 0)
	}
	return strftime.Format(layout, t.In(loc))
}
