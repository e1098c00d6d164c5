// Package config defines the loader options record and its defaults.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

// Options is the per-run options record recognized by the pipeline.
type Options struct {
	Resource     ResourceOption     `yaml:"resource"`
	Git          GitOption          `yaml:"git"`
	Parse        ParseOptions       `yaml:"parse"`
	ImportSource ImportSourceOption `yaml:"importSource"`

	// Plugins holds user plugin declarations in the order they run. Entries are
	// identifiers, [use, options] pairs or {use, options} records.
	Plugins []any `yaml:"plugins"`
}

// ParseOptions toggles the document-level built-ins and the markdown dialect.
type ParseOptions struct {
	FrontMatter bool `yaml:"frontMatter"`
	Heading     bool `yaml:"heading"`

	// CommonMark selects a strict CommonMark parser. When false the GFM
	// extensions (tables, strikethrough, autolinks, task lists) are enabled.
	CommonMark bool `yaml:"commonmark"`
}

// ResourceOption enables the resource-identity transform.
// It decodes from a boolean or a mapping such as {fingerprint: true}.
type ResourceOption struct {
	Enabled     bool
	Fingerprint bool
}

// UnmarshalYAML accepts `resource: true` and `resource: {fingerprint: true}`.
func (o *ResourceOption) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("resource must be a boolean or a mapping: %w", err)
		}
		*o = ResourceOption{Enabled: enabled}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Fingerprint bool `yaml:"fingerprint"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*o = ResourceOption{Enabled: true, Fingerprint: raw.Fingerprint}
		return nil
	default:
		return fmt.Errorf("resource must be a boolean or a mapping (line %d)", node.Line)
	}
}

// Value returns the options handed to the resource transform factory.
func (o ResourceOption) Value() map[string]any {
	return map[string]any{"fingerprint": o.Fingerprint}
}

// Defaults returns a fresh options value. Callers own the result and may mutate it.
func Defaults() *Options {
	return &Options{
		Resource: ResourceOption{Enabled: true},
		Git:      GitOption{Enabled: true},
		Parse: ParseOptions{
			FrontMatter: true,
			Heading:     true,
			CommonMark:  true,
		},
	}
}

// Validate checks the parts of the options record that can be checked before
// plugins are resolved.
func (o *Options) Validate() error {
	if o == nil {
		return errors.ConfigError("options are nil").Build()
	}
	if o.Git.Enabled {
		if err := o.Git.Config().Validate(); err != nil {
			return err
		}
	}
	if o.ImportSource.Enabled {
		for i, l := range o.ImportSource.Loaders {
			if l.Loader == "" {
				return errors.ConfigError("import source loader name is empty").
					WithContext("index", i).
					Build()
			}
		}
	}
	return nil
}
