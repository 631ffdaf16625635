package settings

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Indent is the indentation used when writing settings files.
const Indent = "    "

// Document is a flat JSON object whose keys keep their insertion order.
// Values are kept as raw JSON so nested objects round-trip untouched.
type Document struct {
	m *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{m: orderedmap.New[string, json.RawMessage]()}
}

// ParseDocument decodes data as a JSON object. The source path is only used
// in error messages.
func ParseDocument(path string, data []byte) (*Document, error) {
	if err := validate(data); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}

	d := NewDocument()
	if err := json.Unmarshal(data, d.m); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	return d, nil
}

// Len returns the number of keys.
func (d *Document) Len() int { return d.m.Len() }

// Keys returns the keys in order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get returns the raw JSON value for key.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	return d.m.Get(key)
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.m.Get(key)
	return ok
}

// Set stores a raw JSON value. An existing key keeps its position.
func (d *Document) Set(key string, value json.RawMessage) {
	d.m.Set(key, value)
}

// Encode renders the document as indented JSON with a trailing newline.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(d.m); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return buf.Bytes(), nil
}
