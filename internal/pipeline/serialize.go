package pipeline

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
	"git.home.luguber.info/inful/mdmeta/internal/plugin"
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Serialize renders the generated module: every fragment in order, then an
// export assigning the metadata and the bound keys. Without a binding or a
// metadata value for "source" the export sets source to null.
func Serialize(st *plugin.State) (string, error) {
	meta := st.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return "", errors.InternalError("metadata is not serializable").WithCause(err).Build()
	}

	bindings := st.Bindings()
	if _, bound := bindings["source"]; !bound {
		if _, present := meta["source"]; !present {
			bindings["source"] = "null"
		}
	}
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, f := range st.Fragments() {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "module.exports = Object.assign(%s, {\n", data)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s,\n", propertyName(k), bindings[k])
	}
	b.WriteString("});\n")
	return b.String(), nil
}

// JSON renders the metadata record alone, indented.
func JSON(metadata map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, errors.InternalError("metadata is not serializable").WithCause(err).Build()
	}
	return append(data, '\n'), nil
}

func propertyName(k string) string {
	if identifier.MatchString(k) {
		return k
	}
	q, _ := json.Marshal(k)
	return string(q)
}
