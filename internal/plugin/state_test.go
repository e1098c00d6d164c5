package plugin

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Section(t *testing.T) {
	st := NewState(nil, nil, nil)

	meta := st.Section("meta")
	meta["title"] = "Hello"
	assert.Equal(t, map[string]any{"title": "Hello"}, st.Metadata["meta"])
	assert.Equal(t, "Hello", st.Section("meta")["title"])

	st.Metadata["meta"] = "clobbered"
	assert.Empty(t, st.Section("meta"))
}

func TestState_FragmentsAndBindings(t *testing.T) {
	var st State

	st.Emit("const a = 1;")
	st.Emit("")
	st.Emit("const b = 2;")
	st.Bind("source", "_source")

	frags := st.Fragments()
	assert.Equal(t, []string{"const a = 1;", "const b = 2;"}, frags)
	frags[0] = "mutated"
	assert.Equal(t, "const a = 1;", st.Fragments()[0])

	assert.Equal(t, map[string]string{"source": "_source"}, st.Bindings())
}

func TestResourceContext_LocalPath(t *testing.T) {
	root := t.TempDir()

	rc, err := NewResourceContext(context.Background(), nil, filepath.Join(root, "docs", "a.md"), root, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "docs/a.md", rc.LocalPath())
	assert.True(t, filepath.IsAbs(rc.ResourcePath))
	assert.NotNil(t, rc.Logger)

	outside, err := NewResourceContext(context.Background(), nil, filepath.Join(root, "..", "x.md"), root, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(outside.ResourcePath), outside.LocalPath())

	noRoot, err := NewResourceContext(context.Background(), nil, filepath.Join(root, "b.md"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "b.md", noRoot.LocalPath())
	assert.NotNil(t, noRoot.Ctx())
}
