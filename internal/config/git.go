package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

// DefaultFormatSeparator separates placeholders in the git log pretty format.
// It is chosen to be unlikely to appear inside author names or subjects.
const DefaultFormatSeparator = "-unrepraduciible-mil-GEV-3155-"

// defaultPlaceholders requests author name, author email and author timestamp.
var defaultPlaceholders = []string{"an", "ae", "at"}

// GitConfig configures the commit history extractor.
type GitConfig struct {
	// Placeholders are `git log --pretty=format` placeholders without the % prefix.
	Placeholders []string      `yaml:"placeholders" json:"placeholders"`
	Initial      bool          `yaml:"initial" json:"initial"`
	Last         bool          `yaml:"last" json:"last"`
	All          bool          `yaml:"all" json:"all"`
	FormatSep    string        `yaml:"formatSep" json:"formatSep"`
	Strict       bool          `yaml:"strict" json:"strict"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultGitConfig returns a fresh copy of the default extractor configuration.
func DefaultGitConfig() GitConfig {
	return GitConfig{
		Placeholders: slices.Clone(defaultPlaceholders),
		Initial:      true,
		Last:         true,
		All:          false,
		FormatSep:    DefaultFormatSeparator,
	}
}

// GitOverrides holds user supplied git settings. Nil fields fall back to defaults.
type GitOverrides struct {
	Placeholders []string       `yaml:"placeholders,omitempty"`
	Initial      *bool          `yaml:"initial,omitempty"`
	Last         *bool          `yaml:"last,omitempty"`
	All          *bool          `yaml:"all,omitempty"`
	FormatSep    *string        `yaml:"formatSep,omitempty"`
	Strict       *bool          `yaml:"strict,omitempty"`
	Timeout      *time.Duration `yaml:"timeout,omitempty"`
}

// Merge returns a new configuration with the overrides applied on top of c.
// Neither c nor o is modified.
func (c GitConfig) Merge(o GitOverrides) GitConfig {
	out := c
	out.Placeholders = slices.Clone(c.Placeholders)
	if o.Placeholders != nil {
		out.Placeholders = slices.Clone(o.Placeholders)
	}
	if o.Initial != nil {
		out.Initial = *o.Initial
	}
	if o.Last != nil {
		out.Last = *o.Last
	}
	if o.All != nil {
		out.All = *o.All
	}
	if o.FormatSep != nil {
		out.FormatSep = *o.FormatSep
	}
	if o.Strict != nil {
		out.Strict = *o.Strict
	}
	if o.Timeout != nil {
		out.Timeout = *o.Timeout
	}
	return out
}

// Overrides expresses a complete configuration as overrides.
func (c GitConfig) Overrides() GitOverrides {
	return GitOverrides{
		Placeholders: slices.Clone(c.Placeholders),
		Initial:      &c.Initial,
		Last:         &c.Last,
		All:          &c.All,
		FormatSep:    &c.FormatSep,
		Strict:       &c.Strict,
		Timeout:      &c.Timeout,
	}
}

// Validate reports a configuration error when the extractor cannot build a
// usable format string from c.
func (c GitConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Placeholders,
			validation.Required.Error("at least one placeholder is required"),
			validation.Each(validation.By(notBlank)),
		),
		validation.Field(&c.FormatSep,
			validation.Required,
			validation.By(singleLine),
		),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return errors.ConfigError("invalid git configuration").WithCause(err).Build()
	}
	return nil
}

func notBlank(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("mdmeta.git.placeholder_type", "placeholder must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("mdmeta.git.placeholder_blank", "placeholder must not be blank")
	}
	return nil
}

func singleLine(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "\r\n") {
		return validation.NewError("mdmeta.git.separator_newline", "separator must not contain a line break")
	}
	return nil
}

// GitOption is the `git` key of the options record: a boolean or a GitConfig mapping.
type GitOption struct {
	Enabled   bool
	Overrides GitOverrides
}

// UnmarshalYAML accepts `git: false` and `git: {all: true}`.
func (o *GitOption) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("git must be a boolean or a mapping: %w", err)
		}
		*o = GitOption{Enabled: enabled}
		return nil
	case yaml.MappingNode:
		var overrides GitOverrides
		if err := node.Decode(&overrides); err != nil {
			return err
		}
		*o = GitOption{Enabled: true, Overrides: overrides}
		return nil
	default:
		return fmt.Errorf("git must be a boolean or a mapping (line %d)", node.Line)
	}
}

// Config returns the effective extractor configuration.
func (o GitOption) Config() GitConfig {
	return DefaultGitConfig().Merge(o.Overrides)
}

// DecodeGitOverrides converts plugin options into overrides.
//
// Accepted values are nil and booleans (defaults), GitOverrides, GitConfig and
// generic mappings as produced by YAML decoding. Anything else is a
// configuration error.
func DecodeGitOverrides(v any) (GitOverrides, error) {
	switch t := v.(type) {
	case nil, bool:
		return GitOverrides{}, nil
	case GitOverrides:
		return t, nil
	case *GitOverrides:
		if t == nil {
			return GitOverrides{}, nil
		}
		return *t, nil
	case GitConfig:
		return t.Overrides(), nil
	case *GitConfig:
		if t == nil {
			return GitOverrides{}, nil
		}
		return t.Overrides(), nil
	case map[string]any:
		raw, err := yaml.Marshal(t)
		if err != nil {
			return GitOverrides{}, errors.ConfigError("invalid git configuration").WithCause(err).Build()
		}
		var out GitOverrides
		if err := yaml.Unmarshal(raw, &out); err != nil {
			return GitOverrides{}, errors.ConfigError("invalid git configuration").WithCause(err).Build()
		}
		return out, nil
	default:
		return GitOverrides{}, errors.ConfigError("invalid git configuration").
			WithContext("type", fmt.Sprintf("%T", v)).
			Build()
	}
}
