package transforms

import (
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

type headingOptions struct {
	Depth int  `yaml:"depth"`
	Keep  bool `yaml:"keep"`
}

// Heading sets metadata meta.heading to the text of the first top-level
// heading of the configured depth (default 1) and removes that node from the
// tree unless {keep: true}. Without such a heading meta.heading is false.
func Heading() *plugin.Plugin {
	return &plugin.Plugin{
		Name:           NameHeading,
		Description:    "first top-level heading text as meta.heading",
		DefaultOptions: map[string]any{"depth": 1},
		New: func(options any) (plugin.Transform, error) {
			opts := headingOptions{Depth: 1}
			if err := plugin.DecodeOptions(options, &opts); err != nil {
				return nil, err
			}
			if opts.Depth < 1 || opts.Depth > 6 {
				opts.Depth = 1
			}
			return func(_ *plugin.ResourceContext, st *plugin.State) (string, error) {
				meta := st.Section("meta")
				h := st.Tree.FirstHeading(opts.Depth)
				if h == nil {
					meta["heading"] = false
					return "", nil
				}
				meta["heading"] = st.Tree.Text(h)
				if !opts.Keep {
					st.Tree.Remove(h)
				}
				return "", nil
			}, nil
		},
	}
}
