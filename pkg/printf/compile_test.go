package printf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.shprintf.dev/pkg/diag"
)

var compileTests = []struct {
	name string
	text string
	want []Directive
}{
	{
		name: "empty",
		text: "",
		want: nil,
	},
	{
		name: "literals",
		text: `a\n%%`,
		want: []Directive{
			&Literal{tok(Literals, "a", 0)},
			&Literal{tok(OneChar, `\n`, 1)},
			&Literal{tok(EscapedPercent, "%%", 3)},
		},
	},
	{
		name: "plain directive",
		text: "%s",
		want: []Directive{
			&Percent{Start: tok(PercentSign, "%", 0), Conv: tok(Type, "s", 1)},
		},
	},
	{
		name: "flags, width and precision",
		text: "[%-08.3s]",
		want: []Directive{
			&Literal{tok(Literals, "[", 0)},
			&Percent{
				Start:     tok(PercentSign, "%", 1),
				Flags:     []Token{tok(Flag, "-", 2), tok(Zero, "0", 3)},
				Width:     &NumSpec{tok(Num, "8", 4)},
				Precision: &NumSpec{tok(Num, "3", 6)},
				Conv:      tok(Type, "s", 7),
			},
			&Literal{tok(Literals, "]", 8)},
		},
	},
	{
		name: "star width and precision",
		text: "%*.*s",
		want: []Directive{
			&Percent{
				Start:     tok(PercentSign, "%", 0),
				Width:     &StarSpec{tok(Star, "*", 1)},
				Precision: &StarSpec{tok(Star, "*", 3)},
				Conv:      tok(Type, "s", 4),
			},
		},
	},
	{
		name: "lone dot is precision zero",
		text: "%.s",
		want: []Directive{
			&Percent{
				Start:     tok(PercentSign, "%", 0),
				Precision: &DotSpec{tok(Dot, ".", 1)},
				Conv:      tok(Type, "s", 2),
			},
		},
	},
	{
		name: "precision with leading zero",
		text: "%.05s",
		want: []Directive{
			&Percent{
				Start:     tok(PercentSign, "%", 0),
				Precision: &NumSpec{tok(Num, "05", 2)},
				Conv:      tok(Type, "s", 4),
			},
		},
	},
	{
		name: "time with precision",
		text: "%.2(%Y)T",
		want: []Directive{
			&Percent{
				Start:     tok(PercentSign, "%", 0),
				Precision: &NumSpec{tok(Num, "2", 2)},
				Conv:      tok(Time, "(%Y)T", 3),
			},
		},
	},
}

func TestCompile(t *testing.T) {
	for _, test := range compileTests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Compile(test.text)
			if err != nil {
				t.Fatalf("Compile(%q) -> error %v", test.text, err)
			}
			if f.Text != test.text {
				t.Errorf("Text = %q, want %q", f.Text, test.text)
			}
			if diff := cmp.Diff(test.want, f.Directives); diff != "" {
				t.Errorf("directives (-want +got):\n%s", diff)
			}
		})
	}
}

var compileErrorTests = []struct {
	text    string
	message string
	at      diag.Ranging
}{
	{"%#x", `flag "#" is not supported`, diag.Ranging{From: 1, To: 2}},
	{"%+d", `flag "+" is not supported`, diag.Ranging{From: 1, To: 2}},
	{"% d", `flag " " is not supported`, diag.Ranging{From: 1, To: 2}},
	{"%f", "floating point conversions are not supported", diag.Ranging{From: 1, To: 2}},
	{"%.2f", "floating point conversions are not supported", diag.Ranging{From: 3, To: 4}},
	{"%c", "single character conversion %c is not supported", diag.Ranging{From: 1, To: 2}},
	{"%.3d", `precision can't be specified with conversion "d"`, diag.Ranging{From: 2, To: 3}},
	{"%.x", `precision can't be specified with conversion "x"`, diag.Ranging{From: 1, To: 2}},
	{"ab%z", "invalid printf format character", diag.Ranging{From: 3, To: 4}},
	{"%5", "expected a printf format character", diag.Ranging{From: 2, To: 2}},
	{"%", "expected a printf format character", diag.Ranging{From: 1, To: 1}},
	{"%-", "expected a printf format character", diag.Ranging{From: 2, To: 2}},
	{"%5*d", "expected a printf format character", diag.Ranging{From: 2, To: 3}},
}

func TestCompile_Errors(t *testing.T) {
	for _, test := range compileErrorTests {
		_, err := Compile(test.text)
		perr, ok := diag.UnpackError[ParseErrorTag](err)
		if !ok {
			t.Errorf("Compile(%q) -> %v, want parse error", test.text, err)
			continue
		}
		if perr.Message != test.message {
			t.Errorf("Compile(%q) -> message %q, want %q", test.text, perr.Message, test.message)
		}
		if perr.Range() != test.at {
			t.Errorf("Compile(%q) -> range %v, want %v", test.text, perr.Range(), test.at)
		}
		if perr.Context.Source != test.text || perr.Context.Name != FormatSourceName {
			t.Errorf("Compile(%q) -> context %q in %q", test.text, perr.Context.Source, perr.Context.Name)
		}
		if ExitStatus(err) != StatusBadFormat {
			t.Errorf("ExitStatus of %q's error -> %d", test.text, ExitStatus(err))
		}
	}
}

func TestPercentAccessors(t *testing.T) {
	f, err := Compile("%-0(%H:%M)T")
	if err != nil {
		t.Fatal(err)
	}
	d := f.Directives[0].(*Percent)
	if d.Verb() != 'T' || d.TimeLayout() != "%H:%M" {
		t.Errorf("Verb() = %q, TimeLayout() = %q", d.Verb(), d.TimeLayout())
	}
	if !d.HasFlag('-') || !d.HasFlag('0') {
		t.Errorf("HasFlag did not find both flags")
	}
	if d.Range() != (diag.Ranging{From: 0, To: 11}) {
		t.Errorf("Range() = %v", d.Range())
	}
}
