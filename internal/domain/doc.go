// Package domain contains the core entities and error taxonomy for gpg2qr.
//
// This package represents the innermost layer of the architecture. It has
// no dependencies on infrastructure concerns (image rendering, file
// system, logging) and contains only the data model of the framing
// protocol.
//
// # Entities
//
//   - [Frame]: one (index, count, data) unit produced by the splitter
//   - [ScannedFrame]: a frame recovered from an optical code, untrusted
//     until the reassembler validates it
//
// Entities are passed by value between stages; no stage shares mutable
// state with another.
package domain
