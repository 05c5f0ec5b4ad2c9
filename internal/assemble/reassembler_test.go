package assemble

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/ludovicl/gpg2qr/internal/domain"
	"github.com/ludovicl/gpg2qr/internal/framing"
)

// splitAndEncode produces the serialized frames for a payload.
func splitAndEncode(t *testing.T, payload []byte) [][]byte {
	t.Helper()
	frames, err := framing.Split(payload)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	batch := make([][]byte, 0, len(frames))
	for _, f := range frames {
		b, err := framing.Encode(f.Index, f.Count, f.Data)
		if err != nil {
			t.Fatalf("Encode returned error: %v", err)
		}
		batch = append(batch, b)
	}
	return batch
}

func TestReassembleRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("The quick brown fox "), 17)
	batch := splitAndEncode(t, payload)

	got, err := Reassemble(batch)
	if err != nil {
		t.Fatalf("Reassemble returned error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("reassembled payload differs from original")
	}
}

func TestReassembleOutOfOrder(t *testing.T) {
	// 130 bytes -> 3 frames; feed them as [2, 0, 1].
	payload := bytes.Repeat([]byte("0123456789"), 13)
	batch := splitAndEncode(t, payload)
	if len(batch) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(batch))
	}
	shuffled := [][]byte{batch[2], batch[0], batch[1]}

	got, err := Reassemble(shuffled)
	if err != nil {
		t.Fatalf("Reassemble returned error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("out-of-order reassembly differs from original")
	}
}

func TestReassembleOrderIndependence(t *testing.T) {
	payload := bytes.Repeat([]byte("order independence!"), 40)
	batch := splitAndEncode(t, payload)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([][]byte, len(batch))
		copy(shuffled, batch)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got, err := Reassemble(shuffled)
		if err != nil {
			t.Fatalf("trial %d: Reassemble returned error: %v", trial, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("trial %d: reassembled payload differs from original", trial)
		}
	}
}

func TestReassembleRejectsDuplicateIndex(t *testing.T) {
	a, _ := framing.Encode(0, 3, []byte("aaa"))
	b1, _ := framing.Encode(1, 3, []byte("bbb"))
	b2, _ := framing.Encode(1, 3, []byte("BBB"))
	if _, err := Reassemble([][]byte{a, b1, b2}); !errors.Is(err, domain.ErrDuplicateIndex) {
		t.Fatalf("expected ErrDuplicateIndex, got %v", err)
	}
}

func TestReassembleRejectsInconsistentCount(t *testing.T) {
	a, _ := framing.Encode(0, 3, []byte("aaa"))
	b, _ := framing.Encode(1, 4, []byte("bbb"))
	if _, err := Reassemble([][]byte{a, b}); !errors.Is(err, domain.ErrInconsistentFrameCount) {
		t.Fatalf("expected ErrInconsistentFrameCount, got %v", err)
	}
}

func TestReassembleRejectsInvalidIndexSizePair(t *testing.T) {
	bad := []byte("003003data")
	if _, err := Reassemble([][]byte{bad}); !errors.Is(err, domain.ErrInvalidIndexSizePair) {
		t.Fatalf("expected ErrInvalidIndexSizePair, got %v", err)
	}
}

func TestReassembleRejectsMalformedHeader(t *testing.T) {
	a, _ := framing.Encode(0, 2, []byte("aaa"))
	if _, err := Reassemble([][]byte{a, []byte("xyz002data")}); !errors.Is(err, domain.ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestReassembleRejectsMissingFrames(t *testing.T) {
	a, _ := framing.Encode(0, 3, []byte("aaa"))
	c, _ := framing.Encode(2, 3, []byte("ccc"))
	if _, err := Reassemble([][]byte{a, c}); !errors.Is(err, domain.ErrMissingFrames) {
		t.Fatalf("expected ErrMissingFrames, got %v", err)
	}
}

func TestReassembleRejectsEmptyBatch(t *testing.T) {
	if _, err := Reassemble(nil); !errors.Is(err, domain.ErrMissingFrames) {
		t.Fatalf("expected ErrMissingFrames, got %v", err)
	}
}

func TestCollectorProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("z"), 104)
	batch := splitAndEncode(t, payload)

	c := NewCollector()
	if c.Complete() {
		t.Fatal("empty collector reports complete")
	}
	if err := c.Add(batch[1]); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if c.Expected() != 2 || c.Received() != 1 || c.Complete() {
		t.Fatalf("after one frame: expected=%d received=%d complete=%v", c.Expected(), c.Received(), c.Complete())
	}
	if _, err := c.Payload(); !errors.Is(err, domain.ErrMissingFrames) {
		t.Fatalf("expected ErrMissingFrames from partial collector, got %v", err)
	}
	if err := c.Add(batch[0]); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if !c.Complete() {
		t.Fatal("collector not complete after all frames")
	}
	got, err := c.Payload()
	if err != nil {
		t.Fatalf("Payload returned error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("collector payload differs from original")
	}
}

func TestVerify(t *testing.T) {
	orig := []byte("identical bytes")
	if err := Verify(orig, append([]byte(nil), orig...)); err != nil {
		t.Fatalf("Verify returned error for equal payloads: %v", err)
	}
	if err := Verify(orig, []byte("identical byteZ")); !errors.Is(err, domain.ErrIntegrityMismatch) {
		t.Fatalf("expected ErrIntegrityMismatch, got %v", err)
	}
}
