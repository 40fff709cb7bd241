package printf

import (
	"fmt"
	"strings"

	"src.shprintf.dev/pkg/diag"
)

// Compile compiles a format string.
//
// Grammar:
//
//	format    = part* EOF
//	part      = literal | '%%' | directive
//	directive = '%' (Flag | Zero)* width? precision? (Type | Time)
//	width     = Num | Star
//	precision = Dot (Num | Zero | Star)?
func Compile(text string) (*Format, error) {
	c := &compiler{lexer: NewLexer(text), f: &Format{Text: text}}
	if err := c.format(); err != nil {
		return nil, err
	}
	return c.f, nil
}

type compiler struct {
	lexer *Lexer
	f     *Format
	tok   Token
}

func (c *compiler) next(mode Mode) {
	c.tok = c.lexer.Read(mode)
}

func (c *compiler) errorf(r diag.Ranger, format string, args ...any) error {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Context: *c.f.Context(r),
	}
}

func (c *compiler) format() error {
	for c.next(ModeOuter); c.tok.Kind != EOF; c.next(ModeOuter) {
		if c.tok.Kind == PercentSign {
			d, err := c.directive()
			if err != nil {
				return err
			}
			c.f.Directives = append(c.f.Directives, d)
		} else {
			c.f.Directives = append(c.f.Directives, &Literal{c.tok})
		}
	}
	return nil
}

func (c *compiler) directive() (*Percent, error) {
	d := &Percent{Start: c.tok}
	c.next(ModeDirective)

	for c.tok.Kind == Flag || c.tok.Kind == Zero {
		if strings.Contains("# +", c.tok.Val) {
			return nil, c.errorf(c.tok, "flag %q is not supported", c.tok.Val)
		}
		d.Flags = append(d.Flags, c.tok)
		c.next(ModeDirective)
	}

	switch c.tok.Kind {
	case Num:
		d.Width = &NumSpec{c.tok}
		c.next(ModeDirective)
	case Star:
		d.Width = &StarSpec{c.tok}
		c.next(ModeDirective)
	}

	if c.tok.Kind == Dot {
		d.Precision = &DotSpec{c.tok}
		c.next(ModeDirective)
		switch c.tok.Kind {
		case Zero:
			zero := c.tok
			c.next(ModeDirective)
			if c.tok.Kind == Num {
				// A precision like .05; the zero is just a leading digit.
				zero = Token{Num, zero.Val + c.tok.Val, diag.MixedRanging(zero, c.tok)}
				c.next(ModeDirective)
			}
			d.Precision = &NumSpec{zero}
		case Num:
			d.Precision = &NumSpec{c.tok}
			c.next(ModeDirective)
		case Star:
			d.Precision = &StarSpec{c.tok}
			c.next(ModeDirective)
		}
	}

	switch c.tok.Kind {
	case Type, Time:
		d.Conv = c.tok
	case Unknown:
		return nil, c.errorf(c.tok, "invalid printf format character")
	default:
		return nil, c.errorf(c.tok, "expected a printf format character")
	}

	if r, msg := checkConversion(d); r != nil {
		return nil, c.errorf(r, "%s", msg)
	}
	return d, nil
}

// Returns the part of d that makes its conversion unsupported along with a
// message, or nil if there is none.
func checkConversion(d *Percent) (diag.Ranger, string) {
	switch verb := d.Verb(); {
	case strings.IndexByte("eEfFgG", verb) >= 0:
		return d.Conv, "floating point conversions are not supported"
	case verb == 'c':
		return d.Conv, "single character conversion %c is not supported"
	case d.Precision != nil && verb != 's' && verb != 'T':
		// Checked after the floating point check, which has a better message.
		return d.Precision, fmt.Sprintf("precision can't be specified with conversion %q", string(verb))
	}
	return nil, ""
}
