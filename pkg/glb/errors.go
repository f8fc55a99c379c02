package glb

import "errors"

// Packer errors. I/O failures are not listed here; they surface as wrapped
// fs errors carrying the offending path.
var (
	// ErrMalformedDescription marks a scene description the packer cannot
	// consolidate, such as a non-first buffer with no uri.
	ErrMalformedDescription = errors.New("glb: malformed scene description")

	// ErrUnsupportedReference marks a buffer or image uri that is not a
	// local relative path. Data URIs and network-resident resources are
	// rejected rather than mishandled.
	ErrUnsupportedReference = errors.New("glb: unsupported resource reference")
)
