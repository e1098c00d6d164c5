package transforms

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/mdmeta/internal/config"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

// SourceBinding is the identifier the import-source fragment declares.
const SourceBinding = "_source"

// ImportSource emits a fragment re-importing the file through a loader chain
// and binds the exported "source" key to it. Options are a []config.Loader or
// any importSource shape; the default chain is raw-loader.
func ImportSource() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        NameImportSource,
		Description: "re-import the file through a loader chain as source",
		New: func(options any) (plugin.Transform, error) {
			chain, err := loaderChain(options)
			if err != nil {
				return nil, err
			}
			prefix := config.InlineRequest(chain)
			return func(rc *plugin.ResourceContext, st *plugin.State) (string, error) {
				request, err := json.Marshal(prefix + "!" + rc.ResourcePath)
				if err != nil {
					return "", err
				}
				st.Bind("source", SourceBinding)
				return fmt.Sprintf("const %s = require(%s);", SourceBinding, request), nil
			}, nil
		},
	}
}

func loaderChain(options any) ([]config.Loader, error) {
	switch v := options.(type) {
	case []config.Loader:
		return config.ImportSourceOption{Loaders: v}.Chain(), nil
	case config.ImportSourceOption:
		return v.Chain(), nil
	case map[string]any:
		if len(v) == 0 {
			return config.ImportSourceOption{}.Chain(), nil
		}
	}
	var opt config.ImportSourceOption
	if err := plugin.DecodeOptions(options, &opt); err != nil {
		return nil, err
	}
	return opt.Chain(), nil
}
