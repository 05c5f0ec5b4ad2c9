package assemble

import (
	"bytes"
	"fmt"

	"github.com/ludovicl/gpg2qr/internal/domain"
	"github.com/ludovicl/gpg2qr/internal/framing"
)

// Collector accumulates scanned frames into a frame table. It is the
// single-writer aggregation stage of reassembly: decoded code payloads
// may be produced concurrently, but Add is called from one goroutine and
// Payload only after every Add has completed.
//
// A Collector is built fresh per run and discarded with it; it holds no
// state across runs.
type Collector struct {
	table    map[int][]byte
	count    int
	received int
	bytes    int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{table: make(map[int][]byte)}
}

// Add decodes one scanned code payload and inserts it into the frame
// table. The first frame establishes the expected count; every later
// frame must agree with it. Any validation failure poisons the whole
// batch and is fatal to the run.
func (c *Collector) Add(raw []byte) error {
	sf, err := framing.Decode(raw)
	if err != nil {
		return err
	}
	if sf.Index >= sf.Count {
		return fmt.Errorf("%w: index %d with count %d", domain.ErrInvalidIndexSizePair, sf.Index, sf.Count)
	}
	if c.count == 0 {
		c.count = sf.Count
	} else if sf.Count != c.count {
		return fmt.Errorf("%w: established %d, frame %d reports %d",
			domain.ErrInconsistentFrameCount, c.count, sf.Index, sf.Count)
	}
	if _, ok := c.table[sf.Index]; ok {
		return fmt.Errorf("%w: index %d", domain.ErrDuplicateIndex, sf.Index)
	}
	c.table[sf.Index] = sf.Data
	c.received++
	c.bytes += len(sf.Data)
	return nil
}

// Complete reports whether every frame of the established count has been
// collected.
func (c *Collector) Complete() bool {
	return c.count > 0 && c.received == c.count
}

// Expected returns the frame count established by the first collected
// frame, or zero when nothing has been collected yet.
func (c *Collector) Expected() int {
	return c.count
}

// Received returns the number of distinct frames collected so far.
func (c *Collector) Received() int {
	return c.received
}

// Payload drains the frame table into the reconstructed payload,
// concatenating strictly in index order. Arrival order never influences
// the result; that is what makes out-of-order physical scanning safe.
func (c *Collector) Payload() ([]byte, error) {
	if !c.Complete() {
		return nil, fmt.Errorf("%w: have %d of %d", domain.ErrMissingFrames, c.received, c.count)
	}
	out := make([]byte, 0, c.bytes)
	for i := 0; i < c.count; i++ {
		chunk, ok := c.table[i]
		if !ok {
			return nil, fmt.Errorf("%w: index %d absent", domain.ErrMissingFrames, i)
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// Reassemble converts an unordered, untrusted batch of decoded code
// payloads into the reconstructed payload, or fails with a precise
// diagnosis of what is wrong with the batch.
func Reassemble(batch [][]byte) ([]byte, error) {
	c := NewCollector()
	for _, raw := range batch {
		if err := c.Add(raw); err != nil {
			return nil, err
		}
	}
	return c.Payload()
}

// Verify compares the reconstructed payload against the original captured
// before splitting. Byte-exact equality is the only success condition.
func Verify(original, reconstructed []byte) error {
	if !bytes.Equal(original, reconstructed) {
		return fmt.Errorf("%w: %d original bytes, %d reconstructed",
			domain.ErrIntegrityMismatch, len(original), len(reconstructed))
	}
	return nil
}
