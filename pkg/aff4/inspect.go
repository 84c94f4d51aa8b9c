package aff4

import (
	"errors"

	"github.com/dd0wney/aff4image/pkg/aff4volume"
)

// BevyInfo describes one on-disk bevy belonging to a stream, for
// read-only inspection tools (spec §4.2's on-disk layout). It is
// derived from the volume directly rather than from any in-memory
// bookkeeping, so it reflects what was actually flushed.
type BevyInfo struct {
	Number     int
	ChunkCount int
	DataSize   int64
	IndexSize  int64
}

// Bevies walks the stream's bevy members from 0 until the volume
// reports the next index member missing, returning what it finds along
// the way. It never mutates stream state and is safe to call
// concurrently with Read.
func (s *Stream) Bevies() ([]BevyInfo, error) {
	s.mu.Lock()
	urn := s.urn
	s.mu.Unlock()

	var out []BevyInfo
	for n := 0; ; n++ {
		indexMember, indexSize, err := s.volume.OpenMember(bevyIndexMemberName(urn, n))
		if err != nil {
			if errors.Is(err, aff4volume.ErrMemberNotFound) {
				break
			}
			return nil, newError("Bevies", KindIOError, urn, err)
		}
		indexMember.Close()

		dataSize := int64(0)
		if dataMember, size, err := s.volume.OpenMember(bevyMemberName(urn, n)); err == nil {
			dataMember.Close()
			dataSize = size
		}

		out = append(out, BevyInfo{
			Number:     n,
			ChunkCount: int(indexSize / 4),
			DataSize:   dataSize,
			IndexSize:  indexSize,
		})
	}
	return out, nil
}
