package bob

import (
	"errors"

	"github.com/arlojacobs/bobfile/internal/engine"
)

// Error classification.
//
// Callers MUST classify errors using errors.Is, not by comparing messages.
var (
	// ErrInvalidArg indicates a null or inconsistent caller-supplied
	// argument. Out-of-range Config values are not reported with it:
	// Create resolves them to an in-range geometry instead.
	ErrInvalidArg = engine.ErrInvalidArg

	// ErrOutOfMemory indicates an allocation was refused, including when a
	// corrupt on-disk length field would require an unreasonable one.
	ErrOutOfMemory = engine.ErrOutOfMemory

	// ErrExists indicates Create collided with an existing file.
	ErrExists = engine.ErrExists

	// ErrCorrupt indicates the file violates the format's invariants.
	// There is no partial recovery: delete and recreate.
	ErrCorrupt = engine.ErrCorrupt

	// ErrBadHandle indicates an operation was attempted on a BOB that is
	// not in a state that allows it — most commonly, after Close.
	ErrBadHandle = errors.New("bob: bad handle")
)
