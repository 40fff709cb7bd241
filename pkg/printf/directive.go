package printf

import (
	"src.shprintf.dev/pkg/diag"
)

// Format is a compiled format string. It holds no argument values and is
// never modified after compilation, so it can be evaluated any number of
// times.
type Format struct {
	Text       string
	Directives []Directive
}

// FormatSourceName is the source name used in diagnostics that point into a
// format string.
const FormatSourceName = "[format]"

// Context returns a diagnostic context for r within the format string.
func (f *Format) Context(r diag.Ranger) *diag.Context {
	return diag.NewContext(FormatSourceName, f.Text, r)
}

// Directive is one unit of a compiled format string. It is implemented by
// *Literal and *Percent only.
type Directive interface {
	diag.Ranger
	accept(v directiveVisitor) error
}

// Each Directive type has a method here, so a new Directive type can't be
// added without the evaluator handling it.
type directiveVisitor interface {
	literal(*Literal) error
	percent(*Percent) error
}

// Literal is text emitted as is, after escape decoding.
type Literal struct {
	Token Token
}

// Range returns the range of the literal in the format string.
func (d *Literal) Range() diag.Ranging { return d.Token.Ranging }

func (d *Literal) accept(v directiveVisitor) error { return v.literal(d) }

// Percent is a %-directive.
type Percent struct {
	// The % token.
	Start Token
	// Flag and Zero tokens, in order of appearance.
	Flags []Token
	// Nil when absent.
	Width Spec
	// Nil when absent.
	Precision Spec
	// A Type or Time token.
	Conv Token
}

// Range returns the range of the whole directive, from % to the conversion.
func (d *Percent) Range() diag.Ranging { return diag.MixedRanging(d.Start, d.Conv) }

func (d *Percent) accept(v directiveVisitor) error { return v.percent(d) }

// Verb returns the conversion letter, 'T' for a time conversion.
func (d *Percent) Verb() byte {
	if d.Conv.Kind == Time {
		return 'T'
	}
	return d.Conv.Val[0]
}

// TimeLayout returns the strftime format of a time conversion: the text
// between the parentheses.
func (d *Percent) TimeLayout() string {
	return d.Conv.Val[1 : len(d.Conv.Val)-2]
}

// HasFlag reports whether the directive has the given flag.
func (d *Percent) HasFlag(flag byte) bool {
	for _, f := range d.Flags {
		if f.Val[0] == flag {
			return true
		}
	}
	return false
}

// Spec is a width or precision. It is implemented by *NumSpec, *StarSpec and
// *DotSpec only.
type Spec interface {
	diag.Ranger
	isSpec()
}

// NumSpec is a width or precision given as a number in the format string.
type NumSpec struct{ Token Token }

// StarSpec is a width or precision taken from the next argument.
type StarSpec struct{ Token Token }

// DotSpec is a precision written as a lone dot, meaning 0.
type DotSpec struct{ Token Token }

func (s *NumSpec) Range() diag.Ranging  { return s.Token.Ranging }
func (s *StarSpec) Range() diag.Ranging { return s.Token.Ranging }
func (s *DotSpec) Range() diag.Ranging  { return s.Token.Ranging }

func (*NumSpec) isSpec()  {}
func (*StarSpec) isSpec() {}
func (*DotSpec) isSpec()  {}
