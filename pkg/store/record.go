package store

import (
	"fmt"

	"src.shprintf.dev/pkg/diag"
	"src.shprintf.dev/pkg/printf"
)

// The msgpack form of a printf.Format.
type formatRecord struct {
	Text       string            `msgpack:"text"`
	Directives []directiveRecord `msgpack:"dirs"`
}

// Either a literal, when Literal is non-nil, or a %-directive.
type directiveRecord struct {
	Literal   *tokenRecord  `msgpack:"lit,omitempty"`
	Start     tokenRecord   `msgpack:"start,omitempty"`
	Flags     []tokenRecord `msgpack:"flags,omitempty"`
	Width     specRecord    `msgpack:"width,omitempty"`
	Precision specRecord    `msgpack:"prec,omitempty"`
	Conv      tokenRecord   `msgpack:"conv,omitempty"`
}

type specKind uint8

const (
	noSpec specKind = iota
	numSpec
	starSpec
	dotSpec
)

type specRecord struct {
	Kind  specKind    `msgpack:"k"`
	Token tokenRecord `msgpack:"t"`
}

type tokenRecord struct {
	Kind printf.TokenKind `msgpack:"k"`
	Val  string           `msgpack:"v"`
	From int              `msgpack:"f"`
	To   int              `msgpack:"t"`
}

func newFormatRecord(f *printf.Format) formatRecord {
	rec := formatRecord{Text: f.Text, Directives: make([]directiveRecord, len(f.Directives))}
	for i, d := range f.Directives {
		switch d := d.(type) {
		case *printf.Literal:
			t := newTokenRecord(d.Token)
			rec.Directives[i] = directiveRecord{Literal: &t}
		case *printf.Percent:
			flags := make([]tokenRecord, len(d.Flags))
			for j, flag := range d.Flags {
				flags[j] = newTokenRecord(flag)
			}
			rec.Directives[i] = directiveRecord{
				Start: newTokenRecord(d.Start), Flags: flags,
				Width: newSpecRecord(d.Width), Precision: newSpecRecord(d.Precision),
				Conv: newTokenRecord(d.Conv)}
		default:
			panic(fmt.Sprintf("unknown directive type %T", d))
		}
	}
	return rec
}

func newSpecRecord(s printf.Spec) specRecord {
	switch s := s.(type) {
	case nil:
		return specRecord{}
	case *printf.NumSpec:
		return specRecord{numSpec, newTokenRecord(s.Token)}
	case *printf.StarSpec:
		return specRecord{starSpec, newTokenRecord(s.Token)}
	case *printf.DotSpec:
		return specRecord{dotSpec, newTokenRecord(s.Token)}
	default:
		panic(fmt.Sprintf("unknown spec type %T", s))
	}
}

func newTokenRecord(t printf.Token) tokenRecord {
	return tokenRecord{t.Kind, t.Val, t.From, t.To}
}

// Converts the record back, rejecting anything Compile would not have produced.
func (rec formatRecord) format() (*printf.Format, error) {
	f := &printf.Format{Text: rec.Text, Directives: make([]printf.Directive, len(rec.Directives))}
	for i, d := range rec.Directives {
		if d.Literal != nil {
			t, err := rec.token(*d.Literal)
			if err != nil {
				return nil, err
			}
			f.Directives[i] = &printf.Literal{Token: t}
			continue
		}
		p := &printf.Percent{}
		var err error
		if p.Start, err = rec.token(d.Start); err != nil {
			return nil, err
		}
		if len(d.Flags) > 0 {
			p.Flags = make([]printf.Token, len(d.Flags))
			for j, flag := range d.Flags {
				if p.Flags[j], err = rec.token(flag); err != nil {
					return nil, err
				}
			}
		}
		if p.Width, err = rec.spec(d.Width); err != nil {
			return nil, err
		}
		if p.Precision, err = rec.spec(d.Precision); err != nil {
			return nil, err
		}
		if p.Conv, err = rec.token(d.Conv); err != nil {
			return nil, err
		}
		f.Directives[i] = p
	}
	if err := printf.Verify(f); err != nil {
		return nil, fmt.Errorf("stored format %q: %w", rec.Text, err)
	}
	return f, nil
}

func (rec formatRecord) spec(s specRecord) (printf.Spec, error) {
	if s.Kind == noSpec {
		return nil, nil
	}
	t, err := rec.token(s.Token)
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case numSpec:
		return &printf.NumSpec{Token: t}, nil
	case starSpec:
		return &printf.StarSpec{Token: t}, nil
	case dotSpec:
		return &printf.DotSpec{Token: t}, nil
	}
	return nil, fmt.Errorf("unknown spec kind %d", s.Kind)
}

func (rec formatRecord) token(t tokenRecord) (printf.Token, error) {
	if t.From < 0 || t.To > len(rec.Text) || t.From > t.To || rec.Text[t.From:t.To] != t.Val {
		return printf.Token{}, fmt.Errorf("stored token %q does not match text at %d-%d", t.Val, t.From, t.To)
	}
	return printf.Token{Kind: t.Kind, Val: t.Val, Ranging: diag.Ranging{From: t.From, To: t.To}}, nil
}
