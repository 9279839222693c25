// Package stream provides incremental decoding of large JSON array documents.
//
// Bulk datasets run to hundreds of megabytes; the decoder yields one array
// element at a time so peak memory is bounded by a single record, never the
// document.
package stream

import (
	"encoding/json"
	"fmt"
	"io"

	"ccx/internal/pipeline"
)

// ArrayDecoder streams the elements of a top-level JSON array, or of an
// array nested under a path of object keys (e.g. the "variants" array inside
// the Commander Spellbook document). Forward-only, single pass.
type ArrayDecoder struct {
	dataset string
	dec     *json.Decoder
	done    bool
}

// NewArrayDecoder prepares r for element-at-a-time decoding. With no path
// the top-level value must be an array; with a path the top-level value must
// be an object and the path must lead to an array. The dataset name is used
// in error messages only.
func NewArrayDecoder(r io.Reader, dataset string, path ...string) (*ArrayDecoder, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	for _, key := range path {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, pipeline.NewMalformedInputError(dataset, fmt.Sprintf("expected object containing %q", key), err)
		}
		if err := seekKey(dec, key); err != nil {
			return nil, pipeline.NewMalformedInputError(dataset, fmt.Sprintf("key %q not found", key), err)
		}
	}

	if err := expectDelim(dec, '['); err != nil {
		return nil, pipeline.NewMalformedInputError(dataset, "expected a JSON array", err)
	}
	return &ArrayDecoder{dataset: dataset, dec: dec}, nil
}

// Next returns the raw bytes of the next array element, or io.EOF once the
// array is exhausted. Every element must be a JSON object; anything else is
// a structural failure of the dataset.
func (d *ArrayDecoder) Next() (json.RawMessage, error) {
	if d.done {
		return nil, io.EOF
	}
	if !d.dec.More() {
		if _, err := d.dec.Token(); err != nil {
			return nil, pipeline.NewMalformedInputError(d.dataset, "unterminated array", err)
		}
		d.done = true
		return nil, io.EOF
	}

	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		return nil, pipeline.NewMalformedInputError(d.dataset, "invalid array element", err)
	}
	if !isObject(raw) {
		return nil, pipeline.NewMalformedInputError(d.dataset, "array element is not an object", nil)
	}
	return raw, nil
}

// expectDelim consumes one token and verifies it is the given delimiter.
func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("got %v, want %v", tok, want)
	}
	return nil
}

// seekKey advances the decoder past object members until it has consumed the
// key named key, leaving the decoder positioned at that key's value. Values
// of other members are skipped without materializing them individually
// beyond one raw message at a time.
func seekKey(dec *json.Decoder, key string) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("object key is %T, not string", tok)
		}
		if name == key {
			return nil
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
	return fmt.Errorf("no member named %q", key)
}

func isObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
