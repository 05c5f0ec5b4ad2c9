// Package framing implements the frame wire format: a 6-character
// hexadecimal header (index, count) followed by up to 52 payload bytes,
// and the deterministic splitter that partitions a payload into frames.
package framing
