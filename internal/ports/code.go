package ports

import "image"

// CodeRenderer renders one serialized frame into an optical code image.
// Rendering is deterministic for valid input and fails on oversize input.
// The renderer's density and error-correction configuration is opaque to
// the core.
type CodeRenderer interface {
	Render(frame []byte) (image.Image, error)
}

// CodeDecoder recovers the serialized frame bytes from a code image.
// For a valid, unobstructed image it must return exactly the bytes that
// were rendered; an unreadable image fails with a scan error.
type CodeDecoder interface {
	Decode(img image.Image) ([]byte, error)
}
