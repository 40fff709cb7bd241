// Package rc reads the configuration file of shprintf.
package rc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"src.shprintf.dev/pkg/env"
)

// Config is the content of the configuration file. Command-line flags take
// precedence over it.
type Config struct {
	// Allow indexed -v targets.
	UnsafeArith bool `yaml:"unsafe-arith"`
	// Path of the database of compiled formats; empty means none.
	DB string `yaml:"db"`
	// Path of the debug log; empty means no log.
	Log string `yaml:"log"`
}

// DefaultPath returns the path of the configuration file used when none is
// given: shprintf/rc.yaml under $XDG_CONFIG_HOME, or under the user's
// configuration directory if that is not set.
func DefaultPath() (string, error) {
	dir := os.Getenv(env.XDG_CONFIG_HOME)
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "shprintf", "rc.yaml"), nil
}

// Load reads the configuration file at path. A missing file yields the zero
// Config, unless mustExist is true. Unknown keys are errors.
func Load(path string, mustExist bool) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !mustExist {
			return &Config{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var cfg Config
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}
