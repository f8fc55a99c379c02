package gltf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned when a JSON object was expected.
var ErrNotObject = errors.New("gltf: expected a JSON object")

// rawFields holds the members of a JSON object in their original order.
// It is how fields this package does not type survive a decode/encode
// round trip untouched.
type rawFields struct {
	keys []string
	vals map[string]json.RawMessage
}

func (r *rawFields) parse(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	r.vals = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("gltf: invalid object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if _, dup := r.vals[key]; !dup {
			r.keys = append(r.keys, key)
		}
		r.vals[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("gltf: unexpected data after object")
	}
	return nil
}

// take removes a member and returns its raw value.
func (r *rawFields) take(key string) (json.RawMessage, bool) {
	raw, ok := r.vals[key]
	if !ok {
		return nil, false
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return raw, true
}

func (r *rawFields) writeTo(w *objectWriter) {
	for _, key := range r.keys {
		w.rawField(key, r.vals[key])
	}
}

// objectWriter builds a compact JSON object with an explicit field order.
// HTML escaping is disabled so string values keep their original bytes.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) sep() {
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
}

func (w *objectWriter) encode(v any) {
	enc := json.NewEncoder(&w.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		w.err = err
		return
	}
	// Encode terminates every value with a newline.
	w.buf.Truncate(w.buf.Len() - 1)
}

func (w *objectWriter) field(key string, v any) {
	if w.err != nil {
		return
	}
	w.sep()
	w.encode(key)
	w.buf.WriteByte(':')
	w.encode(v)
}

func (w *objectWriter) rawField(key string, raw json.RawMessage) {
	if w.err != nil {
		return
	}
	w.sep()
	w.encode(key)
	w.buf.WriteByte(':')
	if err := json.Compact(&w.buf, raw); err != nil {
		w.err = err
	}
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
