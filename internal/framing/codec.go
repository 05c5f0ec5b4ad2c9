package framing

import (
	"fmt"
	"strconv"

	"github.com/ludovicl/gpg2qr/internal/domain"
)

// Wire format constants. The header width and chunk size are protocol
// constants: three hex digits bound the frame count, and changing either
// value breaks compatibility with already-printed sets.
const (
	// HeaderLen is the serialized header length: three hex digits of index
	// followed by three hex digits of count.
	HeaderLen = 6

	// ChunkSize is the payload capacity of a single frame.
	ChunkSize = 52

	// MaxFrameLen is the largest serialized frame: header plus a full chunk.
	MaxFrameLen = HeaderLen + ChunkSize

	// MaxFrameCount is the largest count representable in three hex digits.
	MaxFrameCount = 0xFFF
)

// Encode serializes a frame as a 6-digit hex header followed by the data
// bytes verbatim. The result is exactly HeaderLen+len(data) bytes.
func Encode(index, count int, data []byte) ([]byte, error) {
	if count < 1 || count > MaxFrameCount || index < 0 || index >= count {
		return nil, fmt.Errorf("%w: index=%d count=%d", domain.ErrInvalidFrameParameters, index, count)
	}
	if len(data) < 1 || len(data) > ChunkSize {
		return nil, fmt.Errorf("%w: index=%d data length %d", domain.ErrInvalidFrameParameters, index, len(data))
	}
	buf := make([]byte, 0, HeaderLen+len(data))
	buf = append(buf, fmt.Sprintf("%03x%03x", index, count)...)
	buf = append(buf, data...)
	return buf, nil
}

// Decode parses the 6-digit header and returns the remainder as data. The
// hex fields are case-insensitive and the data may be empty.
//
// Decode is purely syntactic: it does not check index against count.
// Semantic validation of a scanned batch belongs to the reassembler.
func Decode(b []byte) (domain.ScannedFrame, error) {
	if len(b) < HeaderLen {
		return domain.ScannedFrame{}, fmt.Errorf("%w: frame is %d bytes, want at least %d", domain.ErrMalformedHeader, len(b), HeaderLen)
	}
	index, err := strconv.ParseUint(string(b[0:3]), 16, 16)
	if err != nil {
		return domain.ScannedFrame{}, fmt.Errorf("%w: index field %q", domain.ErrMalformedHeader, b[0:3])
	}
	count, err := strconv.ParseUint(string(b[3:6]), 16, 16)
	if err != nil {
		return domain.ScannedFrame{}, fmt.Errorf("%w: count field %q", domain.ErrMalformedHeader, b[3:6])
	}
	data := append([]byte(nil), b[HeaderLen:]...)
	return domain.ScannedFrame{Index: int(index), Count: int(count), Data: data}, nil
}
