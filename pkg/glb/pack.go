package glb

import (
	"fmt"
	"io/fs"
	"net/url"
	"path"

	"github.com/Faultbox/glbpack/pkg/gltf"
)

// Packer consolidates a scene description's external buffers and images into
// a single merged buffer and writes the result as a GLB container.
//
// A Packer owns its Document for the duration of the operation and must not
// be shared between goroutines. Concurrent packs are safe as long as each
// uses its own Packer.
type Packer struct {
	doc  *gltf.Document
	fsys fs.FS

	binLength   int64
	sourceFiles []string
	warnings    []string
}

// NewPacker returns a Packer that resolves relative URIs inside fsys,
// normally os.DirFS of the directory holding the description file.
func NewPacker(doc *gltf.Document, fsys fs.FS) *Packer {
	return &Packer{doc: doc, fsys: fsys}
}

// Pack rewrites all references to external files as references into a single
// merged buffer. Buffers are consolidated first, then images are appended
// after them, in input array order; this fixes the payload byte layout
// deterministically. Call it once, before WriteTo.
func (p *Packer) Pack() error {
	if err := p.packBuffers(); err != nil {
		return err
	}
	if err := p.packImages(); err != nil {
		return err
	}

	p.doc.Buffers = []gltf.Buffer{{ByteLength: p.binLength}}

	if p.binLength > maxChunkLength {
		p.warnings = append(p.warnings, fmt.Sprintf(
			"merged buffer length %d exceeds the 32-bit chunk length limit %d",
			p.binLength, int64(maxChunkLength)))
	}
	return nil
}

// Warnings returns non-fatal conditions recorded during Pack.
func (p *Packer) Warnings() []string {
	return p.warnings
}

func (p *Packer) packBuffers() error {
	// Offset of each external buffer inside the merged buffer, by original
	// buffer index.
	offsets := make(map[int]int64)

	for i := range p.doc.Buffers {
		buf := &p.doc.Buffers[i]
		if buf.URI != "" {
			name, err := localPath(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			p.sourceFiles = append(p.sourceFiles, name)
			offsets[i] = p.binLength
		} else if i != 0 {
			// Only the first buffer may omit uri: that slot denotes data
			// already occupying the start of the merged payload, so it
			// contributes length but no source file.
			return fmt.Errorf("%w: buffer %d has no uri", ErrMalformedDescription, i)
		}
		p.binLength += buf.ByteLength
	}

	// Views into a relocated buffer move with it; views into the no-uri
	// slot at index 0 already point at the right offsets.
	for i := range p.doc.BufferViews {
		view := &p.doc.BufferViews[i]
		offset, ok := offsets[view.Buffer]
		if !ok {
			continue
		}
		view.ByteOffset += offset
		view.Buffer = 0
	}
	return nil
}

func (p *Packer) packImages() error {
	for i := range p.doc.Images {
		img := &p.doc.Images[i]
		if img.URI == "" {
			// Already backed by a buffer view.
			continue
		}
		name, err := localPath(img.URI)
		if err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}

		info, err := fs.Stat(p.fsys, name)
		if err != nil {
			return fmt.Errorf("sizing image %s: %w", name, err)
		}

		view := len(p.doc.BufferViews)
		p.doc.BufferViews = append(p.doc.BufferViews, gltf.BufferView{
			Buffer:     0,
			ByteOffset: p.binLength,
			ByteLength: info.Size(),
		})
		img.BufferView = &view
		img.URI = ""

		p.sourceFiles = append(p.sourceFiles, name)
		p.binLength += info.Size()
	}
	return nil
}

// localPath validates that uri names a local relative file and returns the
// fs path it resolves to.
func localPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedReference, uri, err)
	}
	if u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedReference, uri)
	}
	return path.Clean(u.Path), nil
}
