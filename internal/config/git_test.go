package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

func boolPtr(b bool) *bool { return &b }

func TestGitConfig_MergeDoesNotMutateDefaults(t *testing.T) {
	base := DefaultGitConfig()
	merged := base.Merge(GitOverrides{
		Placeholders: []string{"H", "s"},
		All:          boolPtr(true),
	})

	assert.Equal(t, []string{"H", "s"}, merged.Placeholders)
	assert.True(t, merged.All)
	assert.True(t, merged.Initial)

	merged.Placeholders[0] = "mutated"
	assert.Equal(t, []string{"an", "ae", "at"}, base.Placeholders)
	assert.Equal(t, []string{"an", "ae", "at"}, DefaultGitConfig().Placeholders)
	assert.False(t, DefaultGitConfig().All)
}

func TestGitConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*GitConfig)
		wantErr bool
	}{
		{"defaults", func(*GitConfig) {}, false},
		{"empty placeholders", func(c *GitConfig) { c.Placeholders = nil }, true},
		{"blank placeholder", func(c *GitConfig) { c.Placeholders = []string{"an", " "} }, true},
		{"empty separator", func(c *GitConfig) { c.FormatSep = "" }, true},
		{"separator with newline", func(c *GitConfig) { c.FormatSep = "\n" }, true},
		{"negative timeout", func(c *GitConfig) { c.Timeout = -time.Second }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGitConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestDecodeGitOverrides(t *testing.T) {
	t.Run("nil and booleans select defaults", func(t *testing.T) {
		for _, v := range []any{nil, true} {
			o, err := DecodeGitOverrides(v)
			require.NoError(t, err)
			assert.Equal(t, DefaultGitConfig(), DefaultGitConfig().Merge(o))
		}
	})

	t.Run("generic mapping", func(t *testing.T) {
		o, err := DecodeGitOverrides(map[string]any{"initial": false, "placeholders": []any{"H"}, "timeout": "2s"})
		require.NoError(t, err)

		cfg := DefaultGitConfig().Merge(o)
		assert.False(t, cfg.Initial)
		assert.True(t, cfg.Last)
		assert.Equal(t, []string{"H"}, cfg.Placeholders)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
	})

	t.Run("full config round trips", func(t *testing.T) {
		want := DefaultGitConfig()
		want.All = true
		want.FormatSep = "|"

		o, err := DecodeGitOverrides(want)
		require.NoError(t, err)
		assert.Equal(t, want, DefaultGitConfig().Merge(o))
	})

	t.Run("scalar is a configuration error", func(t *testing.T) {
		_, err := DecodeGitOverrides("an,ae")
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})
}
