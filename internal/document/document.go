package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blacnova/dashboard-server/internal/model"
)

// Document is a parsed JSON content document. The top level is always an
// object; nested values are whatever encoding/json produces.
type Document map[string]any

// Parse decodes data into a Document. Malformed JSON and non-object
// top-level values are rejected with ErrInvalidDocument.
func Parse(data []byte) (Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidDocument, err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value must be an object", model.ErrInvalidDocument)
	}

	return Document(obj), nil
}

// Set assigns value at the given path, creating intermediate objects as
// needed. An intermediate that exists but is not an object is replaced by
// a fresh object; siblings along the path are left untouched.
func (d Document) Set(path []string, value any) {
	if len(path) == 0 {
		return
	}

	node := map[string]any(d)
	for _, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[key] = child
		}
		node = child
	}
	node[path[len(path)-1]] = value
}

// SetPath assigns value at a dotted path such as "content.hero.title".
func (d Document) SetPath(path string, value any) {
	d.Set(strings.Split(path, "."), value)
}

// Apply sets every entry of patch, keyed by dotted path, onto the document.
func (d Document) Apply(patch map[string]any) {
	for path, value := range patch {
		d.SetPath(path, value)
	}
}

// Get returns the value at a dotted path.
func (d Document) Get(path string) (any, bool) {
	keys := strings.Split(path, ".")
	var node any = map[string]any(d)
	for _, key := range keys {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Encode serializes the document as indented JSON, the format stored in
// the remote repository.
func (d Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidDocument, err)
	}
	return data, nil
}
