// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.shprintf.dev/pkg/buildinfo.Var=value" to "go build" or
// "go install".
package buildinfo

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// VersionBase identifies the version of shprintf. On development commits, it
// identifies the next release.
const VersionBase = "0.1.0"

// VCSOverride may be set to "TIME-REVISION" to build a development version
// when the build has no VCS information, such as in a source tarball.
var VCSOverride string

// Reproducible identifies whether the build is reproducible.
var Reproducible = "false"

// Type contains all the build information fields.
type Type struct {
	Version      string
	GoVersion    string
	Reproducible bool
}

// Value contains the build information of this binary.
var Value = Type{
	Version:      devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	GoVersion:    runtime.Version(),
	Reproducible: Reproducible == "true",
}

// Show writes the build information to w.
func (v Type) Show(w io.Writer) {
	fmt.Fprintln(w, "Version:", v.Version)
	fmt.Fprintln(w, "Go version:", v.GoVersion)
	fmt.Fprintln(w, "Reproducible build:", v.Reproducible)
}

func devVersion(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := readBuildInfo()
	if !ok {
		return fallback
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		// Installed as a module at a known version.
		return strings.TrimPrefix(v, "v")
	}

	var revision, modified string
	var vcsTime time.Time
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			t, err := time.Parse(time.RFC3339, setting.Value)
			if err != nil {
				return fallback
			}
			vcsTime = t
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" || vcsTime.IsZero() {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := fmt.Sprintf("%s-dev.0.%s-%s", next, vcsTime.UTC().Format("20060102150405"), revision)
	if modified == "true" {
		version += "-dirty"
	}
	return version
}
