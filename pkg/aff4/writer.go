package aff4

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/aff4image/pkg/logging"
)

// Write appends data to the stream, chunking and compressing full
// chunks as they accumulate (spec §4.3). Short writes never occur:
// Write either consumes all of data or returns an error. It corresponds
// to the original's AFF4Image::Write.
func (s *Stream) Write(ctx context.Context, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = true
	s.buffer = append(s.buffer, data...)

	offset := 0
	chunksFlushed := 0
	for len(s.buffer)-offset >= s.chunkSize {
		if err := s.flushChunk(s.buffer[offset:offset+s.chunkSize]); err != nil {
			return 0, err
		}
		offset += s.chunkSize
		chunksFlushed++
	}
	// Keep the remainder, which is smaller than a full chunk, for the next Write.
	s.buffer = append([]byte(nil), s.buffer[offset:]...)

	s.readptr += int64(len(data))
	if s.readptr > s.size {
		s.size = s.readptr
	}

	s.metrics.RecordWrite(len(data), chunksFlushed)
	s.metrics.SetStreamSize(s.size)

	return len(data), nil
}

// flushChunk compresses one chunk, appends it to the current bevy, and
// rolls the bevy over once it reaches chunksPerSegment (spec §4.3.1's
// FlushChunk). Callers must hold s.mu.
func (s *Stream) flushChunk(chunk []byte) error {
	start := time.Now()
	compressed, err := compress(s.compression, chunk)
	if err != nil {
		s.metrics.RecordCompressionError(s.compression.String(), "compress")
		s.logger.Error("chunk compression failed",
			logging.StreamURN(s.urn), logging.Compression(s.compression.String()), logging.Error(err))
		return err
	}
	s.metrics.RecordCompression(s.compression.String(), time.Since(start))

	s.bevy.append(compressed)
	s.chunkCountInBevy++

	if s.chunkCountInBevy >= s.chunksPerSegment {
		return s.flushBevy()
	}
	return nil
}

// flushBevy writes the accumulated bevy data and index to new volume
// members and resets the accumulator (spec §4.4's _FlushBevy). A bevy
// with no chunks in it is a no-op, matching the original's early return
// on an empty bevy.
func (s *Stream) flushBevy() error {
	if s.bevy.size() == 0 {
		s.logger.Debug("bevy is empty, nothing to flush", logging.StreamURN(s.urn))
		return nil
	}

	start := time.Now()
	bevyName := bevyMemberName(s.urn, s.bevyNumber)
	indexName := bevyIndexMemberName(s.urn, s.bevyNumber)
	s.bevyNumber++

	indexMember, err := s.volume.CreateMember(indexName)
	if err != nil {
		return newError("FlushBevy", KindIOError, s.urn, err)
	}
	if _, err := indexMember.Write(s.bevy.index); err != nil {
		indexMember.Close()
		return newError("FlushBevy", KindIOError, s.urn, err)
	}
	if err := indexMember.Close(); err != nil {
		return newError("FlushBevy", KindIOError, s.urn, err)
	}

	dataMember, err := s.volume.CreateMember(bevyName)
	if err != nil {
		return newError("FlushBevy", KindIOError, s.urn, err)
	}
	if _, err := dataMember.Write(s.bevy.data); err != nil {
		dataMember.Close()
		return newError("FlushBevy", KindIOError, s.urn, err)
	}
	if err := dataMember.Close(); err != nil {
		return newError("FlushBevy", KindIOError, s.urn, err)
	}

	uncompressed := s.bevy.size() * s.chunkSize
	compressedLen := len(s.bevy.data)
	s.metrics.RecordBevyFlush(time.Since(start), uncompressed, compressedLen)
	s.logger.Info("bevy flushed",
		logging.StreamURN(s.urn), logging.BevyNumber(s.bevyNumber-1), logging.Int("chunks", s.bevy.size()))

	s.bevy.reset()
	s.chunkCountInBevy = 0

	return nil
}

// bevyMemberName formats a bevy's data member name the way the
// original's aff4_sprintf("%08d", bevy_number) does: zero-padded to 8
// digits, appended to the stream URN (spec §4.2's on-disk layout).
func bevyMemberName(urn string, bevyNumber int) string {
	return fmt.Sprintf("%s/%08d", urn, bevyNumber)
}

func bevyIndexMemberName(urn string, bevyNumber int) string {
	return bevyMemberName(urn, bevyNumber) + "/index"
}
