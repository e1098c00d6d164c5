package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFieldCount reports a log line whose field count differs from the number
// of requested placeholders.
var ErrFieldCount = errors.New("field count does not match placeholders")

// Record maps placeholder names to their raw values for one commit.
type Record map[string]string

// BuildFormat prefixes each placeholder with % and joins them with sep.
func BuildFormat(placeholders []string, sep string) string {
	parts := make([]string, len(placeholders))
	for i, p := range placeholders {
		parts[i] = "%" + p
	}
	return strings.Join(parts, sep)
}

// ParseRecord returns a parser zipping a log line's fields with placeholders.
// Missing trailing fields become "" and surplus fields are dropped.
func ParseRecord(placeholders []string, sep string) func(line string) Record {
	return func(line string) Record {
		values := strings.Split(line, sep)
		rec := make(Record, len(placeholders))
		for i, p := range placeholders {
			if i < len(values) {
				rec[p] = values[i]
			} else {
				rec[p] = ""
			}
		}
		return rec
	}
}

// ParseRecordStrict is like ParseRecord but fails with ErrFieldCount unless the
// line carries exactly one field per placeholder.
func ParseRecordStrict(placeholders []string, sep string) func(line string) (Record, error) {
	lenient := ParseRecord(placeholders, sep)
	return func(line string) (Record, error) {
		if n := strings.Count(line, sep) + 1; n != len(placeholders) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, n, len(placeholders))
		}
		return lenient(line), nil
	}
}
