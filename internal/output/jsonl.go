package output

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONLine marshals v as one compact, newline-terminated JSONL line
// without HTML escaping. Struct field order keeps the output deterministic.
func JSONLine(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteJSONL writes one JSONL file of the given records without splitting.
// Used for the reverse index, which is bounded by the card pool size.
func WriteJSONL[T any](dir, base string, compress bool, kind string, records []T) (WrittenFile, error) {
	var b strings.Builder
	for _, rec := range records {
		line, err := JSONLine(rec)
		if err != nil {
			return WrittenFile{}, err
		}
		b.WriteString(line)
	}
	return writeFile(dir, FileName(base, ".jsonl", compress), []byte(b.String()), compress, kind, len(records))
}
