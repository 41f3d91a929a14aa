package engine

// chaosIO wraps a real ioBackend and fails a chosen call deterministically,
// so tests can pin down exactly which syscall in a multi-step protocol
// (Set's write-then-commit-then-truncate-then-punch sequence) was the one
// that didn't make it to disk, and assert the file is still recoverable
// afterward.
type chaosIO struct {
	ioBackend

	calls   *int
	failAt  int
	failErr error
}

func (c chaosIO) nth() int {
	*c.calls++

	return *c.calls
}

func (c chaosIO) shouldFail() bool {
	return c.nth() >= c.failAt
}

func (c chaosIO) Write(p []byte) error {
	if c.shouldFail() {
		return c.failErr
	}

	return c.ioBackend.Write(p)
}

func (c chaosIO) Ftruncate(size int64) error {
	if c.shouldFail() {
		return c.failErr
	}

	return c.ioBackend.Ftruncate(size)
}

func (c chaosIO) PunchHole(offset, length int64) error {
	if c.shouldFail() {
		return c.failErr
	}

	return c.ioBackend.PunchHole(offset, length)
}

func (c chaosIO) AllocateFromCurrent(length int64) error {
	if c.shouldFail() {
		return c.failErr
	}

	return c.ioBackend.AllocateFromCurrent(length)
}

func (c chaosIO) Fsync() error {
	if c.shouldFail() {
		return c.failErr
	}

	return c.ioBackend.Fsync()
}

// newChaosIO installs a chaosIO in front of f's real backend that fails the
// n'th call, and every call after it, to any of the wrapped methods with
// err. The "and every call after" part matters: a test simulating a crash
// must not let a later retry through the same descriptor quietly repair the
// damage that was supposed to be permanent.
func newChaosIO(f *File, n int, err error) {
	calls := 0
	f.io = chaosIO{ioBackend: f.io, calls: &calls, failAt: n, failErr: err}
}
