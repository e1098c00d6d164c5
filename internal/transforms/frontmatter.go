package transforms

import (
	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/mdmeta/internal/frontmatter"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

// FrontMatter merges the decoded front matter fields into metadata "meta".
func FrontMatter() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        NameFrontMatter,
		Description: "front matter fields merged into meta",
		New: func(any) (plugin.Transform, error) {
			return func(rc *plugin.ResourceContext, st *plugin.State) (string, error) {
				doc, err := frontmatter.Parse(st.Source)
				if err != nil {
					return "", errors.TransformError("invalid front matter").
						WithCause(err).
						WithContext("path", rc.ResourcePath).
						Build()
				}
				meta := st.Section("meta")
				for k, v := range doc.Fields {
					meta[k] = v
				}
				return "", nil
			}, nil
		},
	}
}
