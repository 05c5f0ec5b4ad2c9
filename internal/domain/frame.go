package domain

// Frame is one (index, count, data) unit of the payload, sized to fit
// within a single optical code's binary capacity.
// Frames are produced by the splitter and consumed immediately by the
// render/self-check stage; they are not persisted.
type Frame struct {
	// Index is the zero-based position of this frame within the run.
	Index int

	// Count is the total number of frames in the run.
	Count int

	// Data is a contiguous, non-overlapping slice of the payload.
	Data []byte
}

// ScannedFrame is structurally a Frame but was recovered by decoding an
// optical code of unknown provenance. It is untrusted until the
// reassembler has validated it against the rest of its batch.
type ScannedFrame struct {
	Index int
	Count int
	Data  []byte
}
