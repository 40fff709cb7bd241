//go:build windows

package sys

import "golang.org/x/sys/windows"

var (
	setenv = windows.Setenv
	getenv = windows.Getenv
)
