package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorTag is used to parameterize [Error] into different concrete types.
type ErrorTag interface {
	ErrorTag() string
}

// Error represents an error with context that can be shown.
type Error[T ErrorTag] struct {
	Message string
	Context Context
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	var tag T
	return tag.ErrorTag() + ": " + e.Context.describeStart() + ": " + e.Message
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging {
	return e.Context.Range()
}

var (
	messageStart = ""
	messageEnd   = ""
	headerColor  = color.New(color.FgRed, color.Bold)
)

// Show shows the error.
func (e *Error[T]) Show(indent string) string {
	var tag T
	return fmt.Sprintf("%s: %s\n%s%s", capitalize(tag.ErrorTag()),
		styleMessage(e.Message), indent+"  ",
		e.Context.ShowCompact(indent+"  "))
}

func styleMessage(msg string) string {
	if messageStart != "" || messageEnd != "" {
		return messageStart + msg + messageEnd
	}
	return headerColor.Sprint(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// UnpackError returns the underlying *Error[T] if err is or wraps one.
func UnpackError[T ErrorTag](err error) (*Error[T], bool) {
	var e *Error[T]
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
