package getopt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	vSpec = &Spec{'v', RequiredArgument}
	aSpec = &Spec{'a', NoArgument}
	specs = []*Spec{vSpec, aSpec}
)

var parseTests = []struct {
	name         string
	args         []string
	wantOpts     Options
	wantOperands []string
	wantErr      string
}{
	{
		name:         "no options",
		args:         []string{"%s\n", "x"},
		wantOperands: []string{"%s\n", "x"},
	},
	{
		name:         "argument as next word",
		args:         []string{"-v", "name", "%s", "x"},
		wantOpts:     Options{{Spec: vSpec, Argument: "name", Word: 1}},
		wantOperands: []string{"%s", "x"},
	},
	{
		name:         "attached argument",
		args:         []string{"-vname", "%s"},
		wantOpts:     Options{{Spec: vSpec, Argument: "name"}},
		wantOperands: []string{"%s"},
	},
	{
		name:         "chained options",
		args:         []string{"-avname", "%s"},
		wantOpts:     Options{{Spec: aSpec}, {Spec: vSpec, Argument: "name"}},
		wantOperands: []string{"%s"},
	},
	{
		name:         "option argument may look like an option",
		args:         []string{"-v", "-a", "x"},
		wantOpts:     Options{{Spec: vSpec, Argument: "-a", Word: 1}},
		wantOperands: []string{"x"},
	},
	{
		name:         "double dash ends options",
		args:         []string{"-a", "--", "-v", "x"},
		wantOpts:     Options{{Spec: aSpec}},
		wantOperands: []string{"-v", "x"},
	},
	{
		name:         "first operand ends options",
		args:         []string{"%s", "-v", "x"},
		wantOperands: []string{"%s", "-v", "x"},
	},
	{
		name:         "lone dash is an operand",
		args:         []string{"-", "-a"},
		wantOperands: []string{"-", "-a"},
	},
	{
		name:     "unknown option",
		args:     []string{"-z", "%s"},
		wantOpts: Options{{Spec: &Spec{Short: 'z'}, Unknown: true}},
		wantErr:  "unknown option -z",
		// Parsing continues after an unknown option.
		wantOperands: []string{"%s"},
	},
	{
		name:     "missing argument",
		args:     []string{"-a", "-v"},
		wantOpts: Options{{Spec: aSpec}},
		wantErr:  "missing argument for -v",
	},
	{
		name: "several errors",
		args: []string{"-zq", "-v"},
		wantOpts: Options{
			{Spec: &Spec{Short: 'z'}, Unknown: true, Argument: "q"}},
		wantErr: "multiple errors: unknown option -z; missing argument for -v",
	},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		t.Run(test.name, func(t *testing.T) {
			opts, operands, err := Parse(test.args, specs)
			if diff := cmp.Diff(test.wantOpts, opts); diff != "" {
				t.Errorf("options (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantOperands, operands, cmpEmpty); diff != "" {
				t.Errorf("operands (-want +got):\n%s", diff)
			}
			errMsg := ""
			if err != nil {
				errMsg = err.Error()
			}
			if errMsg != test.wantErr {
				t.Errorf("got error %q, want %q", errMsg, test.wantErr)
			}
		})
	}
}

// A nil slice and an empty slice of operands are the same.
var cmpEmpty = cmp.Comparer(func(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
})

func TestOptionsGet(t *testing.T) {
	opts, _, _ := Parse([]string{"-v", "first", "-z", "-vsecond"}, specs)
	opt, ok := opts.Get('v')
	if !ok || opt.Argument != "second" || opt.Word != 3 {
		t.Errorf("Get('v') -> (%v, %v), want the last -v", opt, ok)
	}
	if _, ok := opts.Get('z'); ok {
		t.Errorf("Get('z') found an unknown option")
	}
	if _, ok := opts.Get('a'); ok {
		t.Errorf("Get('a') found an absent option")
	}
}
