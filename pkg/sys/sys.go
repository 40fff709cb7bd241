// Package sys provide system utilities with the same API across OSes.
package sys

import (
	"github.com/mattn/go-isatty"
)

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Setenv sets an environment variable of the process, in the environment
// seen by C code such as tzset(3) as well as by the os package.
func Setenv(name, value string) error { return setenv(name, value) }

// Getenv looks up an environment variable of the process.
func Getenv(name string) (string, bool) { return getenv(name) }
