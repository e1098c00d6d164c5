package transforms

import (
	"git.home.luguber.info/inful/mdmeta/internal/git"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

// Built-in plugin identifiers.
const (
	NameResource     = "resource"
	NameGit          = "git"
	NameFrontMatter  = "front-matter"
	NameHeading      = "heading"
	NameImportSource = "import-source"
)

// Builtins returns fresh descriptors of every built-in plugin in pipeline
// precedence order. The git plugin extracts history with extractor.
func Builtins(extractor *git.Extractor) []*plugin.Plugin {
	return []*plugin.Plugin{
		Resource(),
		Git(extractor),
		FrontMatter(),
		Heading(),
		ImportSource(),
	}
}

// RegisterBuiltins registers every built-in plugin in reg so declarations can
// refer to them by name.
func RegisterBuiltins(reg *plugin.Registry, extractor *git.Extractor) error {
	for _, p := range Builtins(extractor) {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}
