package aff4

import "encoding/binary"

// bevyBuilder is the in-memory accumulator of a bevy's packed chunk
// payloads and the parallel index of offsets at which each chunk begins
// (spec §4.2). All on-disk index integers are 32-bit little-endian.
type bevyBuilder struct {
	data  []byte
	index []byte // packed uint32 little-endian offsets, one per chunk
	count int
}

func newBevyBuilder() *bevyBuilder {
	return &bevyBuilder{}
}

// append records the pre-append length of data as the new chunk's index
// entry, then appends the compressed payload to data.
func (b *bevyBuilder) append(compressed []byte) {
	var offset [4]byte
	binary.LittleEndian.PutUint32(offset[:], uint32(len(b.data)))
	b.index = append(b.index, offset[:]...)

	b.data = append(b.data, compressed...)
	b.count++
}

// size returns the number of chunks currently accumulated.
func (b *bevyBuilder) size() int {
	return b.count
}

// reset clears the builder back to empty, ready for the next bevy.
func (b *bevyBuilder) reset() {
	b.data = nil
	b.index = nil
	b.count = 0
}
