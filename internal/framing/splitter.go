package framing

import (
	"fmt"

	"github.com/ludovicl/gpg2qr/internal/domain"
)

// Split partitions the payload into frames of ChunkSize bytes, the last
// frame carrying the remainder. The result is deterministic: the same
// payload always yields the same frame sequence, with indices assigned
// left to right.
func Split(payload []byte) ([]domain.Frame, error) {
	if len(payload) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	count := (len(payload) + ChunkSize - 1) / ChunkSize
	if count > MaxFrameCount {
		return nil, fmt.Errorf("%w: %d bytes needs %d frames, header allows %d",
			domain.ErrPayloadTooLarge, len(payload), count, MaxFrameCount)
	}
	frames := make([]domain.Frame, 0, count)
	for i := 0; i < count; i++ {
		start := i * ChunkSize
		end := start + ChunkSize
		if end > len(payload) {
			end = len(payload)
		}
		data := append([]byte(nil), payload[start:end]...)
		frames = append(frames, domain.Frame{Index: i, Count: count, Data: data})
	}
	return frames, nil
}
