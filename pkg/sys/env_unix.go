//go:build unix

package sys

import "golang.org/x/sys/unix"

var (
	setenv = unix.Setenv
	getenv = unix.Getenv
)
