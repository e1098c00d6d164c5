package plugin

import (
	"maps"
	"slices"

	"git.home.luguber.info/inful/mdmeta/internal/config"
	"git.home.luguber.info/inful/mdmeta/internal/markdown"
)

// State is the mutable record shared by the transforms of one run.
//
// Tree is parsed once and may be mutated in place. Metadata accumulates the
// exported fields; later writers win. Fragments are append only and are emitted
// in order ahead of the final export.
type State struct {
	Tree     *markdown.Tree
	Metadata map[string]any
	Options  *config.Options
	Source   []byte

	fragments []string
	bindings  map[string]string
}

// NewState creates the state for one run.
func NewState(tree *markdown.Tree, source []byte, opts *config.Options) *State {
	return &State{
		Tree:     tree,
		Metadata: make(map[string]any),
		Options:  opts,
		Source:   source,
		bindings: make(map[string]string),
	}
}

// Section returns the metadata sub-record under key, creating it when absent.
// A non-mapping value under key is replaced.
func (s *State) Section(key string) map[string]any {
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	if m, ok := s.Metadata[key].(map[string]any); ok {
		return m
	}
	m := make(map[string]any)
	s.Metadata[key] = m
	return m
}

// Emit appends a code fragment.
func (s *State) Emit(fragment string) {
	if fragment == "" {
		return
	}
	s.fragments = append(s.fragments, fragment)
}

// Fragments returns a copy of the emitted fragments in order.
func (s *State) Fragments() []string {
	return slices.Clone(s.fragments)
}

// Bind makes export key refer to a binding declared by an emitted fragment
// rather than to a literal metadata value.
func (s *State) Bind(key, expr string) {
	if s.bindings == nil {
		s.bindings = make(map[string]string)
	}
	s.bindings[key] = expr
}

// Bindings returns a copy of the export bindings.
func (s *State) Bindings() map[string]string {
	return maps.Clone(s.bindings)
}
