//go:build !unix && !windows

package sys

import "os"

var (
	setenv = os.Setenv
	getenv = os.LookupEnv
)
