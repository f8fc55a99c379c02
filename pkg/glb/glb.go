// Package glb packs a glTF scene description and the external files it
// references into a single self-contained GLB container.
//
// Packing is a straight-line transform: external buffers are merged into one
// buffer, external images are appended after them, and the rewritten
// description plus the concatenated payload are written out as the two
// chunks of a binary glTF (version 2) container. Source files are read
// through an fs.FS so the packer never touches the host filesystem directly.
package glb

// Container layout constants. All container integers are unsigned 32-bit
// little-endian.
const (
	// Magic is the GLB header magic, "glTF".
	Magic = 0x46546C67
	// Version is the container format version.
	Version = 2

	// ChunkTypeJSON tags the structured JSON chunk, "JSON".
	ChunkTypeJSON = 0x4E4F534A
	// ChunkTypeBIN tags the binary payload chunk, "BIN\x00".
	ChunkTypeBIN = 0x004E4942

	headerSize      = 12
	chunkHeaderSize = 8

	// maxChunkLength is the largest payload a 32-bit chunk length can carry.
	maxChunkLength = 1<<32 - 1
)

// alignTo4 rounds n up to the next multiple of 4.
func alignTo4(n int64) int64 {
	return (n + 3) &^ 3
}
