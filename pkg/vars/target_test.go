package vars

import (
	"testing"

	"src.shprintf.dev/pkg/tt"
)

var Args = tt.Args

func TestParseTarget(t *testing.T) {
	tt.Test(t, tt.Fn("ParseTarget", ParseTarget).ArgsFmt("(%q)"), tt.Table{
		Args("x").Rets(Target{Name: "x"}, nil),
		Args("_foo_1").Rets(Target{Name: "_foo_1"}, nil),
		Args("a[0]").Rets(Target{Name: "a", Index: "0", Indexed: true}, nil),
		Args("a[i + 1]").Rets(Target{Name: "a", Index: "i + 1", Indexed: true}, nil),
		Args("a[]").Rets(Target{Name: "a", Indexed: true}, nil),

		Args("").Rets(Target{}, ErrBadTarget),
		Args("1x").Rets(Target{}, ErrBadTarget),
		Args("a-b").Rets(Target{}, ErrBadTarget),
		Args("[0]").Rets(Target{}, ErrBadTarget),
		Args("a[0").Rets(Target{}, ErrBadTarget),
		Args("a[0]x").Rets(Target{}, ErrBadTarget),
		Args("a[0][1]").Rets(Target{}, ErrBadTarget),
	})
}

func TestTarget(t *testing.T) {
	s := NewStore()
	for _, text := range []string{"x", "a[k]"} {
		target, err := ParseTarget(text)
		if err != nil {
			t.Fatal(err)
		}
		if target.String() != text {
			t.Errorf("String() = %q, want %q", target.String(), text)
		}
		target.Var(s).Set("v")
	}
	if v, _ := s.Get("x"); v != "v" {
		t.Errorf("x = %q, want v", v)
	}
	if v, _ := s.GetIndex("a", "k"); v != "v" {
		t.Errorf("a[k] = %q, want v", v)
	}
}
