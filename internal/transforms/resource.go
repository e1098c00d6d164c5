package transforms

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/mdmeta/internal/frontmatter"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

type resourceOptions struct {
	Fingerprint bool `yaml:"fingerprint"`
}

// Resource records the file identity under metadata "resource": the absolute
// path, the root-relative localPath and its hashName. With {fingerprint: true}
// it also records an mdfp content fingerprint.
func Resource() *plugin.Plugin {
	return &plugin.Plugin{
		Name:           NameResource,
		Description:    "file path, root-relative path and stable hash name",
		DefaultOptions: map[string]any{"fingerprint": false},
		New: func(options any) (plugin.Transform, error) {
			var opts resourceOptions
			if err := plugin.DecodeOptions(options, &opts); err != nil {
				return nil, err
			}
			return func(rc *plugin.ResourceContext, st *plugin.State) (string, error) {
				local := rc.LocalPath()
				res := st.Section("resource")
				res["path"] = rc.ResourcePath
				res["localPath"] = local
				res["hashName"] = StringHash(local)

				if opts.Fingerprint {
					res["fingerprint"] = fingerprint(st.Source)
				}
				return "", nil
			}, nil
		},
	}
}

func fingerprint(source []byte) string {
	fm, body, _, err := frontmatter.Split(source)
	if err != nil {
		return mdfp.CalculateFingerprintFromParts("", string(source))
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fm), "\n"), string(body))
}
