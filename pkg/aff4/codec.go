package aff4

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zlib"
)

// zlibCompressionLevel matches the original implementation's
// compress2(..., 1) call — a fast deflate level, not the default.
const zlibCompressionLevel = 1

// compress transforms a chunk of uncompressed data under the given method.
// STORED is an identity copy; ZLIB and SNAPPY are the standard wire formats
// named in spec §6.
func compress(method Compression, in []byte) ([]byte, error) {
	switch method {
	case CompressionStored:
		out := make([]byte, len(in))
		copy(out, in)
		return out, nil

	case CompressionZlib:
		var buf bytes.Buffer
		w, err := zlib.NewWriterLevel(&buf, zlibCompressionLevel)
		if err != nil {
			return nil, newError("compress", KindMemoryError, "", err)
		}
		if _, err := w.Write(in); err != nil {
			return nil, newError("compress", KindMemoryError, "", err)
		}
		if err := w.Close(); err != nil {
			return nil, newError("compress", KindMemoryError, "", err)
		}
		return buf.Bytes(), nil

	case CompressionSnappy:
		return snappy.Encode(nil, in), nil

	default:
		// Unreachable for a Stream constructed through NewConfig/Load,
		// which reject unknown methods before this point.
		return nil, newError("compress", KindFatal, "", nil)
	}
}

// decompress is the inverse of compress. expectedLen is the chunk size the
// stream was configured with; the decoded output is never allowed to
// exceed it (spec §9 Open Question: cap decoded length, report IOError on
// overflow rather than leaving truncation behavior undefined).
func decompress(method Compression, in []byte, expectedLen int) ([]byte, error) {
	switch method {
	case CompressionStored:
		if len(in) > expectedLen {
			return nil, newError("decompress", KindIOError, "", nil)
		}
		out := make([]byte, len(in))
		copy(out, in)
		return out, nil

	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(in))
		if err != nil {
			return nil, newError("decompress", KindIOError, "", err)
		}
		defer r.Close()
		return readBounded(r, expectedLen)

	case CompressionSnappy:
		decodedLen, err := snappy.DecodedLen(in)
		if err != nil {
			return nil, newError("decompress", KindGenericError, "", err)
		}
		if decodedLen > expectedLen {
			return nil, newError("decompress", KindIOError, "", nil)
		}
		out, err := snappy.Decode(make([]byte, decodedLen), in)
		if err != nil {
			return nil, newError("decompress", KindGenericError, "", err)
		}
		return out, nil

	default:
		// Unexpected compression method at decode time is a programmer
		// invariant violation: it should have been rejected at load.
		return nil, newError("decompress", KindFatal, "", nil)
	}
}

// readBounded reads at most limit+1 bytes from r, returning IOError if more
// than limit bytes are available (a corrupt chunk decompressing larger than
// chunk_size), and the exact bytes read otherwise (which may be shorter
// than limit — only the final chunk of a stream is legitimately short).
func readBounded(r io.Reader, limit int) ([]byte, error) {
	buf := make([]byte, limit+1)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, newError("decompress", KindIOError, "", err)
	}
	if n > limit {
		return nil, newError("decompress", KindIOError, "", nil)
	}
	return buf[:n], nil
}
