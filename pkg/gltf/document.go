// Package gltf provides a structural view over glTF scene descriptions.
//
// Only the parts of the document the packer rewrites are typed: buffers,
// buffer views and images. Every other field, at document level and inside
// individual entries, is carried through a decode/encode round trip
// unchanged and in its original order. No schema validation is performed.
package gltf

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is an in-memory glTF scene description.
type Document struct {
	Buffers     []Buffer
	BufferViews []BufferView
	Images      []Image

	keys  []string
	other map[string]json.RawMessage
}

// Decode reads a JSON scene description from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading scene description: %w", err)
	}
	var doc Document
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parsing scene description: %w", err)
	}
	return &doc, nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw rawFields
	if err := raw.parse(data); err != nil {
		return err
	}

	d.keys = raw.keys
	d.other = raw.vals

	for key, dst := range map[string]any{
		"buffers":     &d.Buffers,
		"bufferViews": &d.BufferViews,
		"images":      &d.Images,
	} {
		v, ok := d.other[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		delete(d.other, key)
	}
	return nil
}

// MarshalJSON encodes the document compactly, document fields in their
// original order. Typed arrays added after decoding (a document that had no
// bufferViews gains them when images are packed) are appended at the end.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	written := make(map[string]bool, 3)

	for _, key := range d.keys {
		switch key {
		case "buffers":
			w.field(key, d.Buffers)
		case "bufferViews":
			w.field(key, d.BufferViews)
		case "images":
			w.field(key, d.Images)
		default:
			w.rawField(key, d.other[key])
		}
		written[key] = true
	}

	if !written["buffers"] && d.Buffers != nil {
		w.field("buffers", d.Buffers)
	}
	if !written["bufferViews"] && d.BufferViews != nil {
		w.field("bufferViews", d.BufferViews)
	}
	if !written["images"] && d.Images != nil {
		w.field("images", d.Images)
	}
	return w.bytes()
}
