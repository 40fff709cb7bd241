// Package getopt parses the options of shell builtins.
//
// Options are single characters introduced by "-", and may be chained
// ("-ab") or carry an argument either attached ("-vname") or as the next
// word ("-v name"). Parsing stops at "--" and before the first word that is
// not an option, so "-" and anything after the first operand are operands.
package getopt

import (
	"fmt"
	"strings"

	"src.shprintf.dev/pkg/errutil"
)

// Spec describes an option.
type Spec struct {
	// The option character.
	Short rune
	// Whether the option takes an argument.
	Arity Arity
}

// Arity indicates whether an option takes an argument.
type Arity uint8

const (
	// The option takes no argument.
	NoArgument Arity = iota
	// The option requires an argument, either directly after the option
	// character (-vname) or as the next word (-v name).
	RequiredArgument
)

// Option represents a parsed option.
type Option struct {
	Spec     *Spec
	Unknown  bool
	Argument string
	// Index of the word that holds the argument, or the option itself if it
	// takes no argument.
	Word int
}

// Options is the result of parsing, in the order the options appeared.
type Options []*Option

// Get returns the last occurrence of the option r.
func (opts Options) Get(r rune) (*Option, bool) {
	for i := len(opts) - 1; i >= 0; i-- {
		if !opts[i].Unknown && opts[i].Spec.Short == r {
			return opts[i], true
		}
	}
	return nil, false
}

// Parse parses a list of words. It returns the parsed options, the operands,
// and any error. An error is returned for every unknown option and for an
// option whose argument is missing; the options and operands are still
// returned in that case.
func Parse(args []string, specs []*Spec) (Options, []string, error) {
	var (
		opts Options
		// Non-nil only when the last word was an option with a required
		// argument that has not been seen.
		pending *Option
	)
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if pending != nil {
			pending.Argument, pending.Word = arg, i
			opts = append(opts, pending)
			pending = nil
			continue
		}
		if arg == "--" {
			i++
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			break
		}
		parsed, needArg := parseShort(arg[1:], specs)
		for _, opt := range parsed {
			opt.Word = i
		}
		if needArg {
			opts = append(opts, parsed[:len(parsed)-1]...)
			pending = parsed[len(parsed)-1]
		} else {
			opts = append(opts, parsed...)
		}
	}
	operands := args[i:]

	var err error
	for _, opt := range opts {
		if opt.Unknown {
			err = errutil.Multi(err, fmt.Errorf("unknown option -%c", opt.Spec.Short))
		}
	}
	if pending != nil {
		err = errutil.Multi(err, fmt.Errorf("missing argument for -%c", pending.Spec.Short))
	}
	return opts, operands, err
}

// Parses a chain of short options, without the leading dash. Returns the
// parsed options and whether an argument is still to be seen.
func parseShort(s string, specs []*Spec) ([]*Option, bool) {
	var opts []*Option
	for i, r := range s {
		rest := s[i+len(string(r)):]
		spec := findShort(r, specs)
		if spec == nil {
			// An unknown option swallows the rest of the word, since it may
			// have been an argument.
			return append(opts, &Option{
				Spec: &Spec{Short: r}, Unknown: true, Argument: rest}), false
		}
		if spec.Arity == NoArgument {
			opts = append(opts, &Option{Spec: spec})
			continue
		}
		return append(opts, &Option{Spec: spec, Argument: rest}), rest == ""
	}
	return opts, false
}

func findShort(r rune, specs []*Spec) *Spec {
	for _, spec := range specs {
		if r == spec.Short {
			return spec
		}
	}
	return nil
}
