// Package app wires the framing core to its collaborators: the backup
// pipeline (split, self-check, compose, write) and the restore pipeline
// (scan, decode, reassemble). It depends only on the port interfaces.
package app
