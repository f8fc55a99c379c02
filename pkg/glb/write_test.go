package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func u32(data []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(data[offset:])
}

func packToBytes(t *testing.T, p *Packer) []byte {
	t.Helper()
	if err := p.Pack(); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo reported %d bytes, wrote %d", n, buf.Len())
	}
	return buf.Bytes()
}

func TestWrite_ContainerLayout(t *testing.T) {
	doc := mustDecode(t, `{"asset":{"version":"2.0"},"buffers":[{"byteLength":6,"uri":"a.bin"}]}`)
	fsys := fstest.MapFS{"a.bin": &fstest.MapFile{Data: []byte("abcdef")}}

	p := NewPacker(doc, fsys)
	out := packToBytes(t, p)

	if got := string(out[0:4]); got != "glTF" {
		t.Errorf("magic: got %q", got)
	}
	if u32(out, 0) != Magic {
		t.Errorf("magic: got %#x", u32(out, 0))
	}
	if u32(out, 4) != Version {
		t.Errorf("version: got %d", u32(out, 4))
	}

	jsonLen := u32(out, 12)
	if jsonLen%4 != 0 {
		t.Errorf("JSON chunk length %d not 4-aligned", jsonLen)
	}
	if u32(out, 16) != ChunkTypeJSON {
		t.Errorf("JSON chunk type: got %#x", u32(out, 16))
	}
	if got := string(out[16:20]); got != "JSON" {
		t.Errorf("JSON chunk tag: got %q", got)
	}

	jsonData, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	chunk := out[20 : 20+int(jsonLen)]
	if !bytes.Equal(chunk[:len(jsonData)], jsonData) {
		t.Errorf("JSON chunk data:\n got %s\nwant %s", chunk[:len(jsonData)], jsonData)
	}
	for _, b := range chunk[len(jsonData):] {
		if b != ' ' {
			t.Errorf("JSON chunk padded with %#x, want space", b)
		}
	}

	binStart := 20 + int(jsonLen)
	binLen := u32(out, binStart)
	if binLen != 8 {
		t.Errorf("BIN chunk length: got %d, want 8", binLen)
	}
	if u32(out, binStart+4) != ChunkTypeBIN {
		t.Errorf("BIN chunk type: got %#x", u32(out, binStart+4))
	}
	if got := string(out[binStart+4 : binStart+8]); got != "BIN\x00" {
		t.Errorf("BIN chunk tag: got %q", got)
	}
	if got := string(out[binStart+8 : binStart+16]); got != "abcdef\x00\x00" {
		t.Errorf("BIN chunk data: got %q", got)
	}

	wantTotal := 12 + 8 + int(jsonLen) + 8 + 8
	if u32(out, 8) != uint32(wantTotal) {
		t.Errorf("declared total length %d, want %d", u32(out, 8), wantTotal)
	}
	if len(out) != wantTotal {
		t.Errorf("container is %d bytes, declared %d", len(out), wantTotal)
	}
}

func TestWrite_BufferAndImagePayload(t *testing.T) {
	doc := mustDecode(t, `{
		"buffers": [{"byteLength": 4, "uri": "buf.bin"}],
		"bufferViews": [{"buffer": 0, "byteLength": 4}],
		"images": [{"uri": "pic.png", "mimeType": "image/png"}]
	}`)
	picture := []byte("0123456789")
	fsys := fstest.MapFS{
		"buf.bin": &fstest.MapFile{Data: []byte("hunk")},
		"pic.png": &fstest.MapFile{Data: picture},
	}

	p := NewPacker(doc, fsys)
	out := packToBytes(t, p)

	jsonLen := int(u32(out, 12))
	binStart := 20 + jsonLen

	// 4 buffer bytes + 10 image bytes, zero-padded to 16.
	if got := u32(out, binStart); got != 16 {
		t.Errorf("BIN chunk length: got %d, want 16", got)
	}
	payload := out[binStart+8:]
	want := append(append([]byte("hunk"), picture...), 0, 0)
	if !bytes.Equal(payload, want) {
		t.Errorf("BIN payload: got %q, want %q", payload, want)
	}

	wantTotal := 12 + 8 + jsonLen + 8 + 16
	if len(out) != wantTotal || u32(out, 8) != uint32(wantTotal) {
		t.Errorf("total length: file %d, declared %d, want %d",
			len(out), u32(out, 8), wantTotal)
	}
}

func TestWrite_Idempotent(t *testing.T) {
	const input = `{
		"buffers": [{"byteLength": 4, "uri": "buf.bin"}],
		"bufferViews": [{"buffer": 0, "byteLength": 4}],
		"images": [{"uri": "pic.png", "mimeType": "image/png"}]
	}`
	fsys := fstest.MapFS{
		"buf.bin": &fstest.MapFile{Data: []byte("hunk")},
		"pic.png": &fstest.MapFile{Data: make([]byte, 10)},
	}

	first := packToBytes(t, NewPacker(mustDecode(t, input), fsys))
	second := packToBytes(t, NewPacker(mustDecode(t, input), fsys))
	if !bytes.Equal(first, second) {
		t.Error("packing the same input twice produced different bytes")
	}
}

func TestWrite_MissingSourceFile(t *testing.T) {
	// Buffer sizes are declared, not measured, so a missing buffer file
	// only surfaces when the payload is streamed.
	doc := mustDecode(t, `{"buffers":[{"byteLength":6,"uri":"missing.bin"}]}`)

	p := NewPacker(doc, fstest.MapFS{})
	if err := p.Pack(); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	_, err := p.WriteTo(&bytes.Buffer{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestWrite_FailuresCarryPath(t *testing.T) {
	doc := mustDecode(t, `{"buffers":[{"byteLength":6,"uri":"missing.bin"}]}`)

	p := NewPacker(doc, fstest.MapFS{})
	if err := p.Pack(); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	_, err := p.WriteTo(&bytes.Buffer{})
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != "missing.bin" {
		t.Errorf("expected a PathError for missing.bin, got %v", err)
	}
}

func TestAlignTo4(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 4, 2: 4, 3: 4, 4: 4, 5: 8, 6: 8, 10: 12}
	for in, want := range cases {
		if got := alignTo4(in); got != want {
			t.Errorf("alignTo4(%d) = %d, want %d", in, got, want)
		}
	}
}
