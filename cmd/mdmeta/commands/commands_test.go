package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

const doc = "---\ntitle: Hello\n---\n# Getting started\n\nSome text.\n"

func writeDoc(t *testing.T) (dir, file string) {
	t.Helper()
	dir = t.TempDir()
	file = filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o600))
	return dir, file
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("mdmeta"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&Global{Stdout: &out}, cli)
	return out.String(), err
}

func TestLoad_JSON(t *testing.T) {
	dir, file := writeDoc(t)

	out, err := run(t, "load", file, "--no-git", "--root", dir, "--format", "json")
	require.NoError(t, err)

	var exported map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.NotContains(t, exported, "git")

	meta, ok := exported["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hello", meta["title"])
	assert.Equal(t, "Getting started", meta["heading"])

	resource, ok := exported["resource"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "doc.md", resource["localPath"])
}

func TestLoad_IsDefaultCommand(t *testing.T) {
	dir, file := writeDoc(t)

	out, err := run(t, file, "--no-git", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "module.exports = Object.assign(")
	assert.Contains(t, out, "source: null")
}

func TestLoad_OutputAndMetricsFiles(t *testing.T) {
	dir, file := writeDoc(t)
	target := filepath.Join(dir, "doc.md.js")
	metricsFile := filepath.Join(dir, "mdmeta.prom")

	out, err := run(t, "load", file, "--no-git", "--root", dir, "-o", target, "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	module, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(module), "module.exports")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "mdmeta_run_outcomes_total")
}

func TestLoad_OptionsFile(t *testing.T) {
	dir, file := writeDoc(t)
	optsFile := filepath.Join(dir, "mdmeta.yaml")
	require.NoError(t, os.WriteFile(optsFile, []byte("git: false\nparse:\n  heading: false\n"), 0o600))

	out, err := run(t, "-c", optsFile, "load", file, "--root", dir, "-f", "json")
	require.NoError(t, err)

	var exported map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.NotContains(t, exported, "git")

	meta, ok := exported["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hello", meta["title"])
	assert.NotContains(t, meta, "heading")
}

func TestLoad_MissingOptionsFile(t *testing.T) {
	dir, file := writeDoc(t)

	_, err := run(t, "-c", filepath.Join(dir, "missing.yaml"), "load", file, "--root", dir)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_RejectsUnknownFormat(t *testing.T) {
	_, file := writeDoc(t)

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("mdmeta"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"load", file, "--format", "xml"})
	assert.Error(t, err)
}

func TestPlugins_ListsBuiltins(t *testing.T) {
	out, err := run(t, "plugins")
	require.NoError(t, err)
	for _, name := range []string{"resource", "git", "front-matter", "heading", "import-source"} {
		assert.Contains(t, out, name)
	}
}
