// Package plugin defines the transform contract shared by the pipeline and
// every built-in or user supplied plugin, and normalizes plugin declarations
// into descriptors the pipeline can run.
package plugin

import (
	"fmt"

	"git.home.luguber.info/inful/mdmeta/internal/config"
)

// Transform is one pipeline step. It may read and mutate st and may return a
// code fragment to append to the generated module; an empty string appends
// nothing.
type Transform func(rc *ResourceContext, st *State) (string, error)

// Factory builds a Transform from plugin specific options.
type Factory func(options any) (Transform, error)

// Condition decides from the pipeline options whether a plugin runs.
type Condition func(opts *config.Options) bool

// Always is the Condition used when a plugin declares none.
func Always(*config.Options) bool { return true }

// Plugin describes a transform factory and its declared defaults.
type Plugin struct {
	// Name is the registry identifier (e.g., "git", "heading").
	Name string

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// New builds the transform.
	New Factory

	// DefaultOptions are passed to New when a declaration supplies none.
	DefaultOptions any

	// Condition gates execution; nil means Always.
	Condition Condition
}

// Validate checks that the plugin can be registered.
func (p *Plugin) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if p.New == nil {
		return fmt.Errorf("plugin %s has no factory", p.Name)
	}
	return nil
}

// String returns a human-readable representation of the plugin.
func (p *Plugin) String() string {
	if p.Description == "" {
		return p.Name
	}
	return fmt.Sprintf("%s: %s", p.Name, p.Description)
}

// Func wraps a bare factory as an anonymous plugin.
func Func(name string, f Factory) *Plugin {
	return &Plugin{Name: name, New: f}
}
