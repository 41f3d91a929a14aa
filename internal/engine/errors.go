package engine

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Sentinel errors mirroring the BOB error taxonomy. IO failures are not a
// sentinel: the underlying syscall error is returned verbatim, as spec's IO
// class is "any syscall surfaced verbatim".
var (
	// ErrInvalidArg indicates a null or inconsistent caller input.
	ErrInvalidArg = errors.New("bob: invalid argument")

	// ErrOutOfMemory indicates an allocation was refused, including a
	// corrupt on-disk length field large enough that honoring it would be
	// an unreasonable allocation request.
	ErrOutOfMemory = errors.New("bob: out of memory")

	// ErrExists indicates Create collided with an existing file.
	ErrExists = errors.New("bob: exists")

	// ErrCorrupt indicates the header, a varint, or a record violates the
	// on-disk format invariants. Surfaced to callers as an illegal byte
	// sequence.
	ErrCorrupt = errors.New("bob: illegal byte sequence")
)

// mapOpenError translates the one open(2) failure mode the engine assigns a
// sentinel to; every other failure is returned verbatim as an IO error.
func mapOpenError(err error) error {
	if errors.Is(err, unix.EEXIST) {
		return ErrExists
	}

	return err
}
