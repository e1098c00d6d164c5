package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_TOMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("+++\ntitle = \"Hello\"\n+++\nBody\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title = \"Hello\"\n"), fm)
	require.Equal(t, []byte("Body\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	_, _, had, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\nkey: value\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Empty(t, body)
}

func TestParse_YAML_ReturnsFieldsAndBody(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Hello\ntags:\n  - one\nauthor:\n  name: Ada\n---\n# Heading One\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, "Hello", doc.Fields["title"])
	require.Equal(t, []any{"one"}, doc.Fields["tags"])
	require.Equal(t, map[string]any{"name": "Ada"}, doc.Fields["author"])
	require.Contains(t, string(doc.Body), "# Heading One")
}

func TestParse_TOML_ReturnsFields(t *testing.T) {
	doc, err := Parse([]byte("+++\ntitle = \"Hello\"\nweight = 3\n+++\nBody\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, "Hello", doc.Fields["title"])
	require.EqualValues(t, 3, doc.Fields["weight"])
}

func TestParse_NoFrontmatter_ReturnsEmptyFields(t *testing.T) {
	input := []byte("# Title\n")

	doc, err := Parse(input)
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Empty(t, doc.Fields)
	require.Equal(t, input, doc.Body)
}

func TestParse_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.Error(t, err)
}

func TestSplit_DelimitersWithSurroundingWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing spaces on close", "---\nkey: value\n---   \n# Title\n"},
		{"trailing spaces on open", "---  \nkey: value\n---\n# Title\n"},
		{"leading blank lines", "\n\n---\nkey: value\n---\n# Title\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, had, err := Split([]byte(tt.input))
			require.NoError(t, err)
			require.True(t, had)
			require.Equal(t, []byte("key: value\n"), fm)
			require.Equal(t, []byte("# Title\n"), body)

			doc, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			require.True(t, doc.Had)
			require.Equal(t, "value", doc.Fields["key"])
			require.Equal(t, body, doc.Body)
		})
	}
}

func TestParse_NonStringKeysAreStringified(t *testing.T) {
	doc, err := Parse([]byte("---\nsizes:\n  1: small\n  2: large\nlist:\n  - true: yes\n---\nbody\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"1": "small", "2": "large"}, doc.Fields["sizes"])
	require.Equal(t, []any{map[string]any{"true": "yes"}}, doc.Fields["list"])
}
