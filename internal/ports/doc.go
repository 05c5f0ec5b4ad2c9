// Package ports defines the interfaces that connect the framing core to
// its external collaborators.
//
// The core owns only the frame wire format; rendering an optical code,
// decoding one back, writing sheet images and sourcing scans are all
// collaborator concerns. The application layer (internal/app) depends
// only on these interfaces, and the adapters (internal/adapters)
// implement them with concrete libraries.
//
// # Port Interfaces
//
//   - [CodeRenderer]: renders one serialized frame into a code image
//   - [CodeDecoder]: recovers serialized frame bytes from a code image
//   - [ScanSource]: yields scan images for restore, in no defined order
//   - [SheetWriter]: persists composed sheet images
//   - [Logger]: structured logging abstraction
package ports
