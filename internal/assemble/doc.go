// Package assemble reconstructs the original payload from an unordered
// batch of scanned frames, validating corruption, duplication and
// incompleteness before trusting the result.
package assemble
