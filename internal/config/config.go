// Package config loads the driver configuration file. Configuration is
// optional; a missing file yields the defaults, and command-line flags
// override file values.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given.
const DefaultFileName = ".cpp2go.yaml"

// Config is the driver configuration.
type Config struct {
	// Sources are the default inputs when the command line names none.
	Sources []string `yaml:"sources"`
	// Jobs bounds how many files are parsed concurrently; 0 means one
	// per CPU.
	Jobs int `yaml:"jobs"`
	// PrintAST renders the parse tree of each file to stdout.
	PrintAST bool `yaml:"print_ast"`
	// Watch re-parses files when they change on disk.
	Watch bool `yaml:"watch"`
	// RequireVersion is a semver constraint the running tool must
	// satisfy, e.g. ">= 0.1.0". Empty means no check.
	RequireVersion string `yaml:"require_version"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration from path. A missing file at the default
// location is not an error; an explicitly named file must exist.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}
