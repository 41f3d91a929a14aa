// Package engine implements the BOB on-disk file engine: geometry
// resolution, the buffered block-aligned writer, header encode/decode, the
// parse-on-open replay, and the append-and-reclaim cue protocol.
//
// It operates on raw file descriptors through an ioBackend seam so tests can
// inject faults at chosen syscalls, or substitute an in-memory backend,
// without a device that actually fails.
// Everything above the descriptor and byte-offset level — blob identity,
// handle lifecycle, configuration — belongs to the public bob package.
package engine
