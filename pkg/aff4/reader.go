package aff4

import (
	"context"
	"encoding/binary"
	"io"
	"time"

	"github.com/dd0wney/aff4image/pkg/logging"
)

// Read returns up to length bytes starting at the stream's current read
// cursor, clamped to the remaining stream size (spec §4.5). It corresponds to the original's AFF4Image::Read. A
// length over AFF4MaxReadLen is not an error; it returns an empty read,
// matching the original's behavior at this boundary.
func (s *Stream) Read(ctx context.Context, length int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if length > AFF4MaxReadLen {
		return []byte{}, nil
	}

	remaining := s.size - s.readptr
	if remaining < 0 {
		remaining = 0
	}
	if int64(length) > remaining {
		length = int(remaining)
	}
	if length <= 0 {
		return []byte{}, nil
	}

	initialChunkOffset := int(s.readptr % int64(s.chunkSize))
	// Chunks needed to cover [readptr, readptr+length), rounded up. Using
	// length/chunkSize+1 here over-fetches by one whole chunk whenever
	// length is an exact multiple of chunkSize, reaching past the
	// stream's last real chunk and failing instead of stopping at EOF.
	chunksToRead := (initialChunkOffset + length + s.chunkSize - 1) / s.chunkSize
	chunkID := int(s.readptr / int64(s.chunkSize))

	result := make([]byte, 0, chunksToRead*s.chunkSize)
	chunksDecoded := 0

	for chunksToRead > 0 {
		partial, chunksRead, err := s.readPartial(chunkID, chunksToRead)
		if err != nil {
			s.metrics.RecordReadError(err.Error())
			return nil, err
		}
		result = append(result, partial...)
		if chunksRead == 0 {
			break
		}
		chunksDecoded += chunksRead
		chunksToRead -= chunksRead
		chunkID += chunksRead
	}

	if initialChunkOffset > 0 && initialChunkOffset <= len(result) {
		result = result[initialChunkOffset:]
	}
	if len(result) > length {
		result = result[:length]
	}

	s.readptr += int64(len(result))
	s.metrics.RecordRead(len(result), chunksDecoded)

	return result, nil
}

// readPartial reads as many of chunksToRead chunks as lie within a
// single bevy, opening that bevy's data and index members once and
// reusing them across consecutive chunk IDs (spec §4.5.1's
// _ReadPartial). It returns the decoded bytes and the number of chunks
// actually consumed.
func (s *Stream) readPartial(chunkID, chunksToRead int) ([]byte, int, error) {
	bevyID := chunkID / s.chunksPerSegment
	bevyName := bevyMemberName(s.urn, bevyID)
	indexName := bevyIndexMemberName(s.urn, bevyID)

	indexMember, indexSizeBytes, err := s.volume.OpenMember(indexName)
	if err != nil {
		s.logger.Error("bevy index open failed",
			logging.StreamURN(s.urn), logging.BevyNumber(bevyID), logging.Error(err))
		return nil, 0, newError("ReadPartial", KindNotFound, s.urn, err)
	}
	defer indexMember.Close()

	rawIndex, err := io.ReadAll(indexMember)
	if err != nil {
		return nil, 0, newError("ReadPartial", KindIOError, s.urn, err)
	}
	indexSize := int(indexSizeBytes) / 4
	bevyIndex := make([]uint32, indexSize)
	for i := 0; i < indexSize; i++ {
		bevyIndex[i] = binary.LittleEndian.Uint32(rawIndex[i*4 : i*4+4])
	}

	bevyMember, bevySize, err := s.volume.OpenMember(bevyName)
	if err != nil {
		s.logger.Error("bevy data open failed",
			logging.StreamURN(s.urn), logging.BevyNumber(bevyID), logging.Error(err))
		return nil, 0, newError("ReadPartial", KindNotFound, s.urn, err)
	}
	defer bevyMember.Close()

	var result []byte
	chunksRead := 0

	for chunksToRead > 0 {
		chunk, err := s.readChunkFromBevy(chunkID, bevyMember, bevySize, bevyIndex)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, chunk...)

		chunksToRead--
		chunkID++
		chunksRead++

		if bevyID < chunkID/s.chunksPerSegment {
			break
		}
	}

	return result, chunksRead, nil
}

// readChunkFromBevy reads and decompresses a single chunk out of an
// already-open bevy (spec §4.5.2's _ReadChunkFromBevy). The last chunk
// in a bevy's index runs to the end of the bevy's data member rather
// than to a following index entry.
func (s *Stream) readChunkFromBevy(chunkID int, bevy interface {
	io.Reader
	io.Seeker
}, bevySize int64, bevyIndex []uint32) ([]byte, error) {
	chunkIDInBevy := chunkID % s.chunksPerSegment
	indexSize := len(bevyIndex)

	if indexSize == 0 {
		s.logger.Error("bevy index empty", logging.StreamURN(s.urn), logging.ChunkID(chunkID))
		return nil, newError("ReadChunkFromBevy", KindIOError, s.urn, nil)
	}
	if chunkIDInBevy >= indexSize {
		s.logger.Error("bevy index too short", logging.StreamURN(s.urn), logging.ChunkID(chunkID))
		return nil, newError("ReadChunkFromBevy", KindIOError, s.urn, nil)
	}

	var compressedSize int64
	if chunkIDInBevy == indexSize-1 {
		compressedSize = bevySize - int64(bevyIndex[chunkIDInBevy])
	} else {
		compressedSize = int64(bevyIndex[chunkIDInBevy+1] - bevyIndex[chunkIDInBevy])
	}

	if _, err := bevy.Seek(int64(bevyIndex[chunkIDInBevy]), io.SeekStart); err != nil {
		return nil, newError("ReadChunkFromBevy", KindIOError, s.urn, err)
	}
	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(bevy, compressed); err != nil {
		return nil, newError("ReadChunkFromBevy", KindIOError, s.urn, err)
	}

	start := time.Now()
	decompressed, err := decompress(s.compression, compressed, s.chunkSize)
	if err != nil {
		s.metrics.RecordCompressionError(s.compression.String(), "decompress")
		s.logger.Error("chunk decompression failed",
			logging.StreamURN(s.urn), logging.ChunkID(chunkID), logging.Error(err))
		return nil, err
	}
	s.metrics.RecordDecompression(s.compression.String(), time.Since(start))

	return decompressed, nil
}
