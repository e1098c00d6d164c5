package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

func TestDefaults_ReturnsFreshValue(t *testing.T) {
	a := Defaults()
	a.Parse.Heading = false
	a.Plugins = append(a.Plugins, "toc")

	b := Defaults()
	assert.True(t, b.Parse.Heading)
	assert.Empty(t, b.Plugins)
	assert.True(t, b.Resource.Enabled)
	assert.True(t, b.Git.Enabled)
	assert.True(t, b.Parse.FrontMatter)
	assert.True(t, b.Parse.CommonMark)
	assert.False(t, b.ImportSource.Enabled)
}

func TestParse_PartialDocumentKeepsDefaults(t *testing.T) {
	opts := Defaults()
	err := Parse([]byte("parse:\n  heading: false\n"), opts)
	require.NoError(t, err)

	// yaml.v3 decodes nested structs field by field.
	assert.False(t, opts.Parse.Heading)
	assert.True(t, opts.Git.Enabled)
	assert.True(t, opts.Resource.Enabled)
}

func TestParse_GitForms(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		opts := Defaults()
		require.NoError(t, Parse([]byte("git: false\n"), opts))
		assert.False(t, opts.Git.Enabled)
	})

	t.Run("mapping merges with defaults", func(t *testing.T) {
		opts := Defaults()
		require.NoError(t, Parse([]byte("git:\n  all: true\n  timeout: 5s\n"), opts))
		require.True(t, opts.Git.Enabled)

		cfg := opts.Git.Config()
		assert.Equal(t, []string{"an", "ae", "at"}, cfg.Placeholders)
		assert.True(t, cfg.Initial)
		assert.True(t, cfg.Last)
		assert.True(t, cfg.All)
		assert.Equal(t, DefaultFormatSeparator, cfg.FormatSep)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("sequence is rejected", func(t *testing.T) {
		opts := Defaults()
		require.Error(t, Parse([]byte("git: [an]\n"), opts))
	})
}

func TestParse_ImportSourceForms(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		enabled bool
		chain   []string
	}{
		{"disabled", "importSource: false\n", false, []string{"raw-loader"}},
		{"enabled uses raw loader", "importSource: true\n", true, []string{"raw-loader"}},
		{"single name", "importSource: markdown-loader\n", true, []string{"markdown-loader"}},
		{"mapping", "importSource:\n  loader: html-loader\n  options:\n    minimize: true\n", true, []string{"html-loader?minimize=true"}},
		{"list", "importSource:\n  - html-loader\n  - loader: markdown-loader\n    options:\n      gfm: false\n      breaks: true\n", true, []string{"html-loader", "markdown-loader?breaks=true&gfm=false"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := Defaults()
			require.NoError(t, Parse([]byte(tc.yaml), opts))
			assert.Equal(t, tc.enabled, opts.ImportSource.Enabled)

			var got []string
			for _, l := range opts.ImportSource.Chain() {
				got = append(got, l.Request())
			}
			assert.Equal(t, tc.chain, got)
		})
	}
}

func TestInlineRequest(t *testing.T) {
	got := InlineRequest([]Loader{{Loader: "html-loader"}, {Loader: "markdown-loader", Options: map[string]any{"tags": []any{"a", "b"}}}})
	assert.Equal(t, "!html-loader!markdown-loader?tags=a&tags=b", got)
}

func TestParse_ResourceAndPlugins(t *testing.T) {
	opts := Defaults()
	doc := `
resource:
  fingerprint: true
plugins:
  - word-count
  - [toc, {depth: 2}]
  - use: git
    options:
      all: true
`
	require.NoError(t, Parse([]byte(doc), opts))
	assert.True(t, opts.Resource.Enabled)
	assert.True(t, opts.Resource.Fingerprint)

	require.Len(t, opts.Plugins, 3)
	assert.Equal(t, "word-count", opts.Plugins[0])
	assert.Equal(t, []any{"toc", map[string]any{"depth": 2}}, opts.Plugins[1])
	assert.Equal(t, map[string]any{"use": "git", "options": map[string]any{"all": true}}, opts.Plugins[2])
}

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		opts, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Defaults(), opts)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})

	t.Run("expands environment", func(t *testing.T) {
		t.Setenv("MDMETA_TEST_SEP", "|")
		path := filepath.Join(t.TempDir(), "loader.yaml")
		require.NoError(t, os.WriteFile(path, []byte("git:\n  formatSep: \"${MDMETA_TEST_SEP}\"\n"), 0o600))

		opts, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "|", opts.Git.Config().FormatSep)
	})

	t.Run("loads .env next to the file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MDMETA_TEST_LOADER=html-loader\n"), 0o600))
		path := filepath.Join(dir, "loader.yaml")
		require.NoError(t, os.WriteFile(path, []byte("importSource: ${MDMETA_TEST_LOADER}\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("MDMETA_TEST_LOADER") })

		opts, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "html-loader", opts.ImportSource.Chain()[0].Loader)
	})

	t.Run("invalid git configuration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "loader.yaml")
		require.NoError(t, os.WriteFile(path, []byte("git:\n  placeholders: []\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})
}
