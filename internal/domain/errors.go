package domain

import "errors"

// Domain errors for framing, self-check and reassembly. Every failure is
// fatal to the current run: a partially valid multi-frame physical set is
// worse than none. Callers check these with errors.Is.
var (
	// ErrInvalidFrameParameters is returned when the codec is given an
	// out-of-range index, count, or data length.
	ErrInvalidFrameParameters = errors.New("gpg2qr: invalid frame parameters")

	// ErrEmptyPayload is returned when the splitter receives no bytes.
	ErrEmptyPayload = errors.New("gpg2qr: empty payload")

	// ErrPayloadTooLarge is returned when the payload needs more frames
	// than the header's count field can represent.
	ErrPayloadTooLarge = errors.New("gpg2qr: payload too large")

	// ErrFrameRoundTrip is returned when a rendered frame does not decode
	// back to the exact bytes that were encoded.
	ErrFrameRoundTrip = errors.New("gpg2qr: frame failed render round trip")

	// ErrMalformedHeader is returned when a scanned frame's header is not
	// two valid hexadecimal fields.
	ErrMalformedHeader = errors.New("gpg2qr: malformed frame header")

	// ErrInvalidIndexSizePair is returned when a scanned frame's index is
	// not below its count.
	ErrInvalidIndexSizePair = errors.New("gpg2qr: frame index not below count")

	// ErrInconsistentFrameCount is returned when two scanned frames
	// disagree on the total frame count.
	ErrInconsistentFrameCount = errors.New("gpg2qr: inconsistent frame count")

	// ErrDuplicateIndex is returned when the same frame index is scanned
	// twice.
	ErrDuplicateIndex = errors.New("gpg2qr: duplicate frame index")

	// ErrMissingFrames is returned when fewer than count distinct valid
	// frames were recovered.
	ErrMissingFrames = errors.New("gpg2qr: missing frames")

	// ErrIntegrityMismatch is returned when the reassembled payload does
	// not match the payload captured before splitting.
	ErrIntegrityMismatch = errors.New("gpg2qr: reassembled payload differs from original")

	// ErrRenderFailed is returned when the optical code renderer rejects a
	// frame.
	ErrRenderFailed = errors.New("gpg2qr: render failed")

	// ErrScanFailed is returned when an image cannot be decoded as an
	// optical code.
	ErrScanFailed = errors.New("gpg2qr: scan failed")
)
