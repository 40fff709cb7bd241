// Package env keeps names of environment variables with special significance
// to shprintf.
package env

// Environment variables with special significance to shprintf.
const (
	// Timezone used by %(...)T when exported.
	TZ = "TZ"
	// Base directory of the configuration file.
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
)
