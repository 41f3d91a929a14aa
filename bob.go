package bob

import (
	"fmt"

	"github.com/arlojacobs/bobfile/internal/engine"
)

// handleState tracks a BOB's lifecycle so a use-after-Close is reported as
// ErrBadHandle instead of touching a released descriptor.
type handleState int

const (
	stateNew handleState = iota
	statePersisted
	stateClosed
)

// BOB is a handle to an open BOB file. It holds the current blob contents
// in memory (record, sliced from offset so Current never copies the payload a
// second time) alongside the underlying file engine.
//
// A BOB is not safe for concurrent use.
type BOB struct {
	file   *engine.File
	state  handleState
	record []byte
	offset int
}

// Create makes a new BOB file at path with the geometry in cfg (nil means
// fully auto) and returns a handle to it. It fails with ErrExists if path
// already exists.
func Create(cfg *Config, path string) (*BOB, error) {
	f, err := engine.Create(path, cfg.BlockSize(), cfg.CueSize())
	if err != nil {
		return nil, fmt.Errorf("bob: create %q: %w", path, err)
	}

	return &BOB{file: f, state: stateNew}, nil
}

// Open opens an existing BOB file and recovers its current blob, if any.
func Open(path string) (*BOB, error) {
	f, record, offset, err := engine.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bob: open %q: %w", path, err)
	}

	return &BOB{file: f, state: statePersisted, record: record, offset: offset}, nil
}

// Set replaces the blob's contents. The new record is written to the file
// before Set returns, but it is fsynced only by a successful Flush or Close.
func (b *BOB) Set(data []byte) error {
	if b.state == stateClosed {
		return ErrBadHandle
	}

	record, offset := engine.BuildRewriteRecord(data)

	if err := b.file.Set(record); err != nil {
		return fmt.Errorf("bob: set: %w", err)
	}

	b.record, b.offset = record, offset
	b.state = statePersisted

	return nil
}

// Flush commits any buffered bytes and fsyncs the file.
func (b *BOB) Flush() error {
	if b.state == stateClosed {
		return ErrBadHandle
	}

	if err := b.file.Flush(); err != nil {
		return fmt.Errorf("bob: flush: %w", err)
	}

	return nil
}

// Current returns the blob's contents as last Set or recovered by Open. The
// returned slice aliases the handle's internal buffer and must not be
// retained past the next Set or Close.
func (b *BOB) Current() []byte {
	if b.record == nil {
		return nil
	}

	return b.record[b.offset:]
}

// Close commits any buffered bytes, fsyncs, and closes the underlying file,
// returning the first error encountered. Calling Close a second time
// returns ErrBadHandle rather than operating on a released file.
func (b *BOB) Close() error {
	if b.state == stateClosed {
		return ErrBadHandle
	}

	b.state = stateClosed

	if err := b.file.Close(); err != nil {
		return fmt.Errorf("bob: close: %w", err)
	}

	return nil
}
