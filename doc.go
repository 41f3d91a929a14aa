// Package bob implements BOB: a single-file, single-blob binary object
// store optimized for flash and other write-limited media.
//
// A BOB file holds exactly one logical blob at a time. Replacing its
// contents never rewrites the whole file: writes append into the current
// cue (a fixed-size region of the file) until it fills, at which point a
// fresh cue is started at the next cue boundary and the old one is
// reclaimed as a sparse hole. This keeps both the write amplification and
// the steady-state space usage bounded by the cue size, not the blob size.
//
// # Basic usage
//
//	h, err := bob.Create(bob.NewConfig(), "/mnt/flash/state.bob")
//	if err != nil {
//		// handle err
//	}
//	defer h.Close()
//
//	if err := h.Set([]byte("new contents")); err != nil {
//		// handle err
//	}
//
//	h2, err := bob.Open("/mnt/flash/state.bob")
//	// h2.Current() returns the most recently Set (or, after Open, the most
//	// recently recovered) blob contents.
//
// # Concurrency
//
// A [BOB] is not safe for concurrent use. Serialize access to a single
// BOB yourself (a mutex, a single-writer goroutine) if more than one
// goroutine touches it.
//
// # Error handling
//
// [ErrCorrupt] means the file violates the format's invariants — a bad
// magic, a geometry that doesn't satisfy the block/cue-size rules, an
// unknown header tag, or a record that runs past end of file. There is no
// partial recovery path: delete and recreate. [ErrExists] means Create
// collided with an existing path. [ErrInvalidArg] means a null or
// inconsistent caller-supplied argument; out-of-range Config values are not
// reported with it, since Create resolves them automatically.
// [ErrOutOfMemory] means an allocation was refused. [ErrBadHandle] means the
// BOB was already closed. Every other error is a syscall failure, wrapped
// with context using %w, so callers can inspect it with errors.Is against
// the relevant package (os, syscall, golang.org/x/sys/unix).
package bob
