package printf

import (
	"src.shprintf.dev/pkg/diag"
)

// ParseError is an error in a format string, found during compilation.
type ParseError = diag.Error[ParseErrorTag]

// ParseErrorTag parameterizes [diag.Error] to define [ParseError].
type ParseErrorTag struct{}

func (ParseErrorTag) ErrorTag() string { return "parse error" }

// EvalError is an error found while applying a format to arguments.
type EvalError = diag.Error[EvalErrorTag]

// EvalErrorTag parameterizes [diag.Error] to define [EvalError].
type EvalErrorTag struct{}

func (EvalErrorTag) ErrorTag() string { return "printf error" }

// Exit statuses of the printf builtin.
const (
	StatusOK        = 0
	StatusEvalError = 1
	StatusBadFormat = 2
)

// ExitStatus returns the exit status corresponding to an error returned by
// Compile, (*Cache).Get or (*Evaluator).Eval.
func ExitStatus(err error) int {
	if err == nil {
		return StatusOK
	}
	if _, ok := diag.UnpackError[EvalErrorTag](err); ok {
		return StatusEvalError
	}
	return StatusBadFormat
}
