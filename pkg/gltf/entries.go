package gltf

import (
	"encoding/json"
	"fmt"
)

// Buffer is one entry of the document's "buffers" array. A buffer either
// references an external file through URI or, at index 0 only, holds no URI
// and denotes data already embedded in the asset.
type Buffer struct {
	ByteLength int64
	URI        string

	extra rawFields
}

func (b *Buffer) UnmarshalJSON(data []byte) error {
	var raw rawFields
	if err := raw.parse(data); err != nil {
		return err
	}
	if v, ok := raw.take("byteLength"); ok {
		if err := json.Unmarshal(v, &b.ByteLength); err != nil {
			return fmt.Errorf("buffer byteLength: %w", err)
		}
	}
	if v, ok := raw.take("uri"); ok {
		if err := json.Unmarshal(v, &b.URI); err != nil {
			return fmt.Errorf("buffer uri: %w", err)
		}
	}
	b.extra = raw
	return nil
}

func (b Buffer) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	w.field("byteLength", b.ByteLength)
	if b.URI != "" {
		w.field("uri", b.URI)
	}
	b.extra.writeTo(w)
	return w.bytes()
}

// BufferView is a byte range inside one buffer. A missing byteOffset means 0.
type BufferView struct {
	Buffer     int
	ByteOffset int64
	ByteLength int64

	extra rawFields
}

func (v *BufferView) UnmarshalJSON(data []byte) error {
	var raw rawFields
	if err := raw.parse(data); err != nil {
		return err
	}
	if rv, ok := raw.take("buffer"); ok {
		if err := json.Unmarshal(rv, &v.Buffer); err != nil {
			return fmt.Errorf("bufferView buffer: %w", err)
		}
	}
	if rv, ok := raw.take("byteOffset"); ok {
		if err := json.Unmarshal(rv, &v.ByteOffset); err != nil {
			return fmt.Errorf("bufferView byteOffset: %w", err)
		}
	}
	if rv, ok := raw.take("byteLength"); ok {
		if err := json.Unmarshal(rv, &v.ByteLength); err != nil {
			return fmt.Errorf("bufferView byteLength: %w", err)
		}
	}
	v.extra = raw
	return nil
}

func (v BufferView) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	w.field("buffer", v.Buffer)
	if v.ByteOffset != 0 {
		w.field("byteOffset", v.ByteOffset)
	}
	w.field("byteLength", v.ByteLength)
	v.extra.writeTo(w)
	return w.bytes()
}

// Image references its pixel data either through URI (an external file) or
// through BufferView (a range inside a buffer). BufferView is a pointer
// because index 0 is a valid view.
type Image struct {
	URI        string
	MimeType   string
	BufferView *int

	extra rawFields
}

func (img *Image) UnmarshalJSON(data []byte) error {
	var raw rawFields
	if err := raw.parse(data); err != nil {
		return err
	}
	if v, ok := raw.take("uri"); ok {
		if err := json.Unmarshal(v, &img.URI); err != nil {
			return fmt.Errorf("image uri: %w", err)
		}
	}
	if v, ok := raw.take("mimeType"); ok {
		if err := json.Unmarshal(v, &img.MimeType); err != nil {
			return fmt.Errorf("image mimeType: %w", err)
		}
	}
	if v, ok := raw.take("bufferView"); ok {
		if err := json.Unmarshal(v, &img.BufferView); err != nil {
			return fmt.Errorf("image bufferView: %w", err)
		}
	}
	img.extra = raw
	return nil
}

func (img Image) MarshalJSON() ([]byte, error) {
	w := &objectWriter{}
	if img.URI != "" {
		w.field("uri", img.URI)
	}
	if img.MimeType != "" {
		w.field("mimeType", img.MimeType)
	}
	if img.BufferView != nil {
		w.field("bufferView", *img.BufferView)
	}
	img.extra.writeTo(w)
	return w.bytes()
}
