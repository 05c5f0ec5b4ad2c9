package framing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ludovicl/gpg2qr/internal/domain"
)

func TestSplitExactScenario(t *testing.T) {
	// 130 bytes -> three frames of 52, 52 and 26 bytes.
	payload := bytes.Repeat([]byte("abcdefghij"), 13)
	frames, err := Split(payload)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	wantLens := []int{52, 52, 26}
	for i, f := range frames {
		if f.Index != i {
			t.Errorf("frame %d: expected index %d, got %d", i, i, f.Index)
		}
		if f.Count != 3 {
			t.Errorf("frame %d: expected count 3, got %d", i, f.Count)
		}
		if len(f.Data) != wantLens[i] {
			t.Errorf("frame %d: expected %d data bytes, got %d", i, wantLens[i], len(f.Data))
		}
	}
	if !bytes.Equal(frames[0].Data, payload[0:52]) ||
		!bytes.Equal(frames[1].Data, payload[52:104]) ||
		!bytes.Equal(frames[2].Data, payload[104:130]) {
		t.Error("frame data does not match payload slices")
	}
}

func TestSplitMultipleOfChunkSize(t *testing.T) {
	payload := bytes.Repeat([]byte("b"), ChunkSize*4)
	frames, err := Split(payload)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if len(f.Data) != ChunkSize {
			t.Errorf("frame %d: expected full chunk, got %d bytes", i, len(f.Data))
		}
	}
}

func TestSplitSingleByte(t *testing.T) {
	frames, err := Split([]byte("x"))
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(frames) != 1 || frames[0].Count != 1 || len(frames[0].Data) != 1 {
		t.Fatalf("expected one single-byte frame, got %+v", frames)
	}
}

func TestSplitDeterminism(t *testing.T) {
	payload := bytes.Repeat([]byte("determinism"), 37)
	a, err := Split(payload)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	b, err := Split(payload)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("frame counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Index != b[i].Index || a[i].Count != b[i].Count || !bytes.Equal(a[i].Data, b[i].Data) {
			t.Fatalf("frame %d differs between runs", i)
		}
	}
}

func TestSplitEmptyPayload(t *testing.T) {
	if _, err := Split(nil); !errors.Is(err, domain.ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestSplitPayloadTooLarge(t *testing.T) {
	payload := make([]byte, ChunkSize*MaxFrameCount+1)
	if _, err := Split(payload); !errors.Is(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestSplitDoesNotAliasPayload(t *testing.T) {
	payload := bytes.Repeat([]byte("c"), ChunkSize+1)
	frames, err := Split(payload)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	payload[0] = 'X'
	if frames[0].Data[0] != 'c' {
		t.Error("frame data aliases the caller's payload")
	}
}
