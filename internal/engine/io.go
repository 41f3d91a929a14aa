package engine

import (
	"os"

	"github.com/arlojacobs/bobfile/internal/sysx"
)

// ioBackend is the set of descriptor-level operations the file engine needs.
// realIO is the production implementation; tests substitute a faulty
// implementation to exercise failure-atomicity properties without needing a
// real flash device that misbehaves on command.
type ioBackend interface {
	Read(p []byte) (int, error)
	Write(p []byte) error
	Seek(offset int64, whence int) (int64, error)
	SeekData(offset int64) (int64, error)
	Fsync() error
	Ftruncate(size int64) error
	PunchHole(offset, length int64) error
	AllocateFromCurrent(length int64) error
	BlockSize() (uint64, error)
	Close() error
}

type realIO struct {
	fd int
}

func (r realIO) Read(p []byte) (int, error)  { return sysx.Read(r.fd, p) }
func (r realIO) Write(p []byte) error        { return sysx.Write(r.fd, p) }
func (r realIO) Fsync() error                { return sysx.Fsync(r.fd) }
func (r realIO) Ftruncate(size int64) error  { return sysx.Ftruncate(r.fd, size) }
func (r realIO) Close() error                { return sysx.Close(r.fd) }
func (r realIO) BlockSize() (uint64, error)  { return sysx.BlockSize(r.fd) }

func (r realIO) Seek(offset int64, whence int) (int64, error) {
	return sysx.Seek(r.fd, offset, whence)
}

func (r realIO) SeekData(offset int64) (int64, error) {
	return sysx.SeekData(r.fd, offset)
}

func (r realIO) PunchHole(offset, length int64) error {
	return sysx.PunchHole(r.fd, offset, length)
}

func (r realIO) AllocateFromCurrent(length int64) error {
	return sysx.AllocateFromCurrent(r.fd, length)
}

// openFD opens path with flag, wrapping a raw EEXIST into ErrExists so
// callers never need to know the syscall underneath Create.
func openFD(path string, flag int, perm os.FileMode) (int, error) {
	fd, err := sysx.Open(path, flag, perm)
	if err != nil {
		return 0, mapOpenError(err)
	}

	return fd, nil
}
