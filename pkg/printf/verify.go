package printf

import (
	"fmt"
	"slices"
	"strings"
)

var literalKinds = []TokenKind{
	Literals, OneChar, Hex, Octal, Unicode4, Unicode8, BadBackslash, EscapedPercent}

// Verify checks that f has the shape Compile would give its text: the
// tokens cover the text in order, every token lexes back to itself, and
// every %-directive passes the checks made by Compile. A Format that was not
// produced by Compile, such as one decoded from storage, must pass Verify
// before it is evaluated.
func Verify(f *Format) error {
	pos := 0
	for i, d := range f.Directives {
		var err error
		switch d := d.(type) {
		case *Literal:
			err = verifyToken(f, d.Token, pos, ModeOuter, literalKinds...)
		case *Percent:
			err = verifyPercent(f, d, pos)
		default:
			err = fmt.Errorf("unknown directive type %T", d)
		}
		if err != nil {
			return fmt.Errorf("directive %d: %w", i, err)
		}
		pos = d.Range().To
	}
	if pos != len(f.Text) {
		return fmt.Errorf("directives end at %d, text has %d bytes", pos, len(f.Text))
	}
	return nil
}

func verifyPercent(f *Format, d *Percent, pos int) error {
	if err := verifyToken(f, d.Start, pos, ModeOuter, PercentSign); err != nil {
		return err
	}
	pos = d.Start.To
	for _, flag := range d.Flags {
		if err := verifyToken(f, flag, pos, ModeDirective, Flag, Zero); err != nil {
			return err
		}
		if strings.Contains("# +", flag.Val) {
			return fmt.Errorf("flag %q is not supported", flag.Val)
		}
		pos = flag.To
	}

	switch w := d.Width.(type) {
	case nil:
	case *NumSpec:
		if err := verifyToken(f, w.Token, pos, ModeDirective, Num); err != nil {
			return err
		}
		pos = w.Token.To
	case *StarSpec:
		if err := verifyToken(f, w.Token, pos, ModeDirective, Star); err != nil {
			return err
		}
		pos = w.Token.To
	default:
		return fmt.Errorf("width of type %T", w)
	}

	// The dot is only kept when nothing follows it.
	if d.Precision != nil && !strings.HasPrefix(f.Text[pos:], ".") {
		return fmt.Errorf("precision not preceded by a dot at %d", pos)
	}
	switch p := d.Precision.(type) {
	case nil:
	case *DotSpec:
		if err := verifyToken(f, p.Token, pos, ModeDirective, Dot); err != nil {
			return err
		}
		pos = p.Token.To
	case *NumSpec:
		t := p.Token
		if t.Kind == Num && strings.HasPrefix(t.Val, "0") {
			// A leading zero merged into the number.
			if err := matchText(f, t, pos+1); err != nil {
				return err
			}
			t = Token{Num, t.Val[1:], t.Ranging}
			pos++
			t.From++
		}
		if err := verifyToken(f, t, pos+1, ModeDirective, Zero, Num); err != nil {
			return err
		}
		pos = t.To
	case *StarSpec:
		if err := verifyToken(f, p.Token, pos+1, ModeDirective, Star); err != nil {
			return err
		}
		pos = p.Token.To
	default:
		return fmt.Errorf("precision of type %T", p)
	}

	if err := verifyToken(f, d.Conv, pos, ModeDirective, Type, Time); err != nil {
		return err
	}
	if r, msg := checkConversion(d); r != nil {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// Checks that t starts at from, has one of the given kinds, and lexes back to
// a single token of the same kind in mode.
func verifyToken(f *Format, t Token, from int, mode Mode, kinds ...TokenKind) error {
	if err := matchText(f, t, from); err != nil {
		return err
	}
	if !slices.Contains(kinds, t.Kind) {
		return fmt.Errorf("token %q has kind %v", t.Val, t.Kind)
	}
	if got := NewLexer(t.Val).Read(mode); got.Kind != t.Kind || got.To != len(t.Val) {
		return fmt.Errorf("token %q of kind %v lexes as %v %q", t.Val, t.Kind, got.Kind, got.Val)
	}
	return nil
}

func matchText(f *Format, t Token, from int) error {
	if t.From != from || t.From > t.To || t.To > len(f.Text) || f.Text[t.From:t.To] != t.Val {
		return fmt.Errorf("token %q does not match text at %d-%d", t.Val, t.From, t.To)
	}
	return nil
}
