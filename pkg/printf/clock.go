package printf

import (
	"strings"
	"time"

	"src.shprintf.dev/pkg/env"
	"src.shprintf.dev/pkg/sys"
)

// Clock supplies the current time and timezone to time conversions.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// SetTimezone refreshes the timezone used for formatting. When exported
	// is true, tz is the value of the shell's exported TZ variable and takes
	// effect like setting TZ in the environment before tzset(3). Otherwise
	// the timezone is whatever the environment already says. A non-nil error
	// comes with a usable fallback location.
	SetTimezone(tz string, exported bool) (*time.Location, error)
}

// SystemClock is the Clock backed by the system time and the process
// environment. Setting the timezone modifies the process's TZ variable.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// SetTimezone exports tz to the process environment if exported is true, and
// loads the location named by the environment's TZ.
func (SystemClock) SetTimezone(tz string, exported bool) (*time.Location, error) {
	if exported {
		if err := sys.Setenv(env.TZ, tz); err != nil {
			return time.UTC, err
		}
	}
	tz, ok := sys.Getenv(env.TZ)
	return loadLocation(tz, ok)
}

// FixedClock is a Clock that always returns the same time and never touches
// the process environment.
type FixedClock struct {
	Time time.Time
	// Used when TZ is not exported; nil means UTC.
	Local *time.Location
}

// Now returns c.Time.
func (c FixedClock) Now() time.Time { return c.Time }

// SetTimezone loads tz if exported is true, and returns c.Local otherwise.
func (c FixedClock) SetTimezone(tz string, exported bool) (*time.Location, error) {
	if exported {
		return loadLocation(tz, true)
	}
	if c.Local == nil {
		return time.UTC, nil
	}
	return c.Local, nil
}

// Resolves TZ the way glibc does: unset means the system default, empty means
// UTC, a leading colon is ignored, a value that names no zone file is read as
// a POSIX TZ rule, and anything else falls back to UTC.
func loadLocation(tz string, set bool) (*time.Location, error) {
	if !set {
		return time.Local, nil
	}
	tz = strings.TrimPrefix(tz, ":")
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		if posix, perr := loadPOSIXLocation(tz); perr == nil {
			return posix, nil
		}
		return time.UTC, err
	}
	return loc, nil
}
