package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

// Load reads an options file on top of Defaults. An empty path yields the defaults.
//
// Environment variables referenced as $VAR or ${VAR} are expanded before the
// YAML is decoded; .env files next to the options file are loaded first.
func Load(path string) (*Options, error) {
	opts := Defaults()
	if path == "" {
		return opts, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.ConfigError("options file not found").WithContext("path", path).Build()
	}

	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystemError("failed to read options file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	if err := Parse([]byte(os.ExpandEnv(string(data))), opts); err != nil {
		return nil, errors.ConfigError("failed to parse options file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Parse decodes YAML options onto opts; keys absent from data keep their current value.
func Parse(data []byte, opts *Options) error {
	return yaml.Unmarshal(data, opts)
}
