package glb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// copyBlockSize bounds the memory used while streaming source files into
// the BIN chunk; buffers and images may be far larger than RAM allows.
const copyBlockSize = 32 * 1024

// WriteTo emits the GLB container to w: a 12-byte header, the JSON chunk
// (space-padded to a 4-byte boundary) and the BIN chunk (the source files
// concatenated in emission order, zero-padded to a 4-byte boundary).
// It returns the number of bytes written. Pack must have been called first.
func (p *Packer) WriteTo(w io.Writer) (int64, error) {
	jsonData, err := p.doc.MarshalJSON()
	if err != nil {
		return 0, fmt.Errorf("encoding scene description: %w", err)
	}

	alignedJSON := alignTo4(int64(len(jsonData)))
	alignedBin := alignTo4(p.binLength)
	total := headerSize + chunkHeaderSize + alignedJSON + chunkHeaderSize + alignedBin

	cw := &countingWriter{w: w}

	// Header.
	if err := writeUint32s(cw, Magic, Version, uint32(total)); err != nil {
		return cw.n, fmt.Errorf("writing header: %w", err)
	}

	// JSON chunk.
	if err := writeUint32s(cw, uint32(alignedJSON), ChunkTypeJSON); err != nil {
		return cw.n, fmt.Errorf("writing JSON chunk header: %w", err)
	}
	if _, err := cw.Write(jsonData); err != nil {
		return cw.n, fmt.Errorf("writing JSON chunk: %w", err)
	}
	if _, err := cw.Write(bytes.Repeat([]byte{' '}, int(alignedJSON)-len(jsonData))); err != nil {
		return cw.n, fmt.Errorf("writing JSON chunk padding: %w", err)
	}

	// BIN chunk.
	if err := writeUint32s(cw, uint32(alignedBin), ChunkTypeBIN); err != nil {
		return cw.n, fmt.Errorf("writing BIN chunk header: %w", err)
	}
	block := make([]byte, copyBlockSize)
	for _, name := range p.sourceFiles {
		if err := p.copySource(cw, name, block); err != nil {
			return cw.n, err
		}
	}
	if _, err := cw.Write(make([]byte, alignedBin-p.binLength)); err != nil {
		return cw.n, fmt.Errorf("writing BIN chunk padding: %w", err)
	}

	return cw.n, nil
}

func (p *Packer) copySource(w io.Writer, name string, block []byte) error {
	f, err := p.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	if _, err := io.CopyBuffer(w, f, block); err != nil {
		return fmt.Errorf("copying source file %s: %w", name, err)
	}
	return nil
}

func writeUint32s(w io.Writer, vs ...uint32) error {
	return binary.Write(w, binary.LittleEndian, vs)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
