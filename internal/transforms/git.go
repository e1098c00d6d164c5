package transforms

import (
	"git.home.luguber.info/inful/mdmeta/internal/config"
	"git.home.luguber.info/inful/mdmeta/internal/git"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

// Git records commit provenance under metadata "git" as {commits: History}.
// Options are git overrides merged over the defaults; an invalid result is a
// configuration error raised by the factory, before any transform runs.
func Git(extractor *git.Extractor) *plugin.Plugin {
	if extractor == nil {
		extractor = git.NewExtractor()
	}
	return &plugin.Plugin{
		Name:        NameGit,
		Description: "initial, last and all commits touching the file",
		New: func(options any) (plugin.Transform, error) {
			overrides, err := config.DecodeGitOverrides(options)
			if err != nil {
				return nil, err
			}
			cfg := config.DefaultGitConfig().Merge(overrides)
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return func(rc *plugin.ResourceContext, st *plugin.State) (string, error) {
				history, err := extractor.Extract(rc.Ctx(), rc.ResourcePath, cfg)
				if err != nil {
					return "", err
				}
				st.Metadata["git"] = map[string]any{"commits": history}
				return "", nil
			}, nil
		},
	}
}
