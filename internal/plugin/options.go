package plugin

import (
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

// DecodeOptions decodes loosely typed plugin options (as produced by a YAML
// options file) into out, which must be a pointer. The value is round-tripped
// through YAML so out's yaml tags apply.
func DecodeOptions(options any, out any) error {
	if options == nil {
		return nil
	}
	data, err := yaml.Marshal(options)
	if err != nil {
		return errors.ConfigError("plugin options are not serializable").WithCause(err).Build()
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.ConfigError("invalid plugin options").WithCause(err).Build()
	}
	return nil
}
