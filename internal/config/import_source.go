package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSourceLoader re-imports the raw markdown text.
const DefaultSourceLoader = "raw-loader"

// Loader is one entry of an import-source loader chain.
type Loader struct {
	Loader  string         `yaml:"loader"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Request renders the loader as `name` or `name?key=value&...` with keys sorted.
// Only scalar and list option values survive serialization.
func (l Loader) Request() string {
	if len(l.Options) == 0 {
		return l.Loader
	}

	keys := make([]string, 0, len(l.Options))
	for k := range l.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		switch v := l.Options[k].(type) {
		case nil:
			continue
		case []any:
			for _, item := range v {
				values.Add(k, fmt.Sprint(item))
			}
		case []string:
			for _, item := range v {
				values.Add(k, item)
			}
		default:
			values.Add(k, fmt.Sprint(v))
		}
	}
	if len(values) == 0 {
		return l.Loader
	}
	return l.Loader + "?" + values.Encode()
}

// ImportSourceOption is the `importSource` key: a boolean, a loader name, a
// loader mapping, or a list of loader names and mappings.
type ImportSourceOption struct {
	Enabled bool
	Loaders []Loader
}

// UnmarshalYAML decodes every accepted importSource shape.
func (o *ImportSourceOption) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err == nil {
			*o = ImportSourceOption{Enabled: enabled}
			return nil
		}
		*o = ImportSourceOption{Enabled: true, Loaders: []Loader{{Loader: node.Value}}}
		return nil
	case yaml.MappingNode:
		var l Loader
		if err := node.Decode(&l); err != nil {
			return err
		}
		*o = ImportSourceOption{Enabled: true, Loaders: []Loader{l}}
		return nil
	case yaml.SequenceNode:
		loaders := make([]Loader, 0, len(node.Content))
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				loaders = append(loaders, Loader{Loader: item.Value})
			case yaml.MappingNode:
				var l Loader
				if err := item.Decode(&l); err != nil {
					return err
				}
				loaders = append(loaders, l)
			default:
				return fmt.Errorf("importSource loader must be a name or a mapping (line %d)", item.Line)
			}
		}
		*o = ImportSourceOption{Enabled: true, Loaders: loaders}
		return nil
	default:
		return fmt.Errorf("importSource must be a boolean, a loader or a list of loaders (line %d)", node.Line)
	}
}

// Chain returns the configured loaders, or the raw-text loader when none are set.
func (o ImportSourceOption) Chain() []Loader {
	if len(o.Loaders) == 0 {
		return []Loader{{Loader: DefaultSourceLoader}}
	}
	out := make([]Loader, len(o.Loaders))
	copy(out, o.Loaders)
	return out
}

// InlineRequest joins the loader chain into an inline request prefix such as
// `!style-loader!css-loader?modules=true`.
func InlineRequest(loaders []Loader) string {
	parts := make([]string, 0, len(loaders))
	for _, l := range loaders {
		parts = append(parts, l.Request())
	}
	return "!" + strings.Join(parts, "!")
}
