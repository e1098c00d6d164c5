// Package frontmatter separates a structured metadata prefix from a markdown body.
//
// Delimiter detection is entirely adrg/frontmatter's: leading blank lines are
// skipped and delimiter lines are compared with surrounding whitespace trimmed.
// Split and Parse share that scanner so they always agree on where the body starts.
package frontmatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

type format struct {
	delim     string
	unmarshal adrg.UnmarshalFunc
}

// formats recognized at the start of a document. YAML goes through yaml.v3.
var formats = []format{
	{delim: "---", unmarshal: yaml.Unmarshal},
	{delim: "+++", unmarshal: toml.Unmarshal},
	{delim: ";;;", unmarshal: json.Unmarshal},
}

// ErrMissingClosingDelimiter indicates the document started with a front matter
// delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Document is a decoded front matter prefix plus the remaining body.
type Document struct {
	Fields map[string]any
	Body   []byte
	Had    bool
}

// scan runs the adrg scanner over content and hands each block found to
// handle together with the decoder for its delimiter.
func scan(content []byte, handle func(raw []byte, unmarshal adrg.UnmarshalFunc) error) (body []byte, had bool, err error) {
	adrgFormats := make([]*adrg.Format, 0, len(formats))
	for _, f := range formats {
		adrgFormats = append(adrgFormats, adrg.NewFormat(f.delim, f.delim, func(data []byte, _ any) error {
			had = true
			return handle(data, f.unmarshal)
		}))
	}
	body, err = adrg.Parse(bytes.NewReader(content), nil, adrgFormats...)
	return body, had, err
}

// Parse decodes the front matter of content. A document without front matter
// yields empty Fields and the full input as Body. Mapping keys that are not
// strings are stringified so every nested map is a map[string]any.
func Parse(content []byte) (Document, error) {
	fields := map[string]any{}
	body, had, err := scan(content, func(raw []byte, unmarshal adrg.UnmarshalFunc) error {
		return unmarshal(raw, &fields)
	})
	if err != nil {
		return Document{}, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	for k, v := range fields {
		fields[k] = normalize(v)
	}
	return Document{Fields: fields, Body: body, Had: had}, nil
}

// Split separates raw front matter from the markdown body without decoding it.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	var raw []byte
	body, had, err = scan(content, func(data []byte, _ adrg.UnmarshalFunc) error {
		raw = append([]byte{}, data...)
		return nil
	})
	if err != nil {
		return nil, nil, false, err
	}
	if !had {
		if opensBlock(content) {
			return nil, nil, false, ErrMissingClosingDelimiter
		}
		return nil, content, false, nil
	}
	return raw, body, true, nil
}

// opensBlock reports whether the first non-blank line is a start delimiter.
func opensBlock(content []byte) bool {
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		for _, f := range formats {
			if string(line) == f.delim {
				return true
			}
		}
		return false
	}
	return false
}

// normalize converts decoded values so they are JSON encodable.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
