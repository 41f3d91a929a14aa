// Package sysx provides interrupt-safe wrappers around the raw filesystem
// syscalls BOB's file engine needs: open/close/read/write/seek/fsync and the
// sparse-file primitives (fallocate-based hole punching, SEEK_DATA) that make
// the append-and-reclaim write protocol cheap on flash media.
//
// Every wrapper retries on EINTR and otherwise returns the underlying error
// verbatim, so callers can surface it as-is (spec's IO error class).
package sysx

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// Open wraps open(2), retrying on EINTR.
func Open(path string, flag int, perm os.FileMode) (fd int, err error) {
	for {
		fd, err = unix.Open(path, flag, uint32(perm))
		if err == unix.EINTR {
			continue
		}

		return fd, err
	}
}

// Close wraps close(2), retrying on EINTR.
func Close(fd int) error {
	for {
		err := unix.Close(fd)
		if err == unix.EINTR {
			continue
		}

		return err
	}
}

// Read wraps read(2), retrying on EINTR. It performs a single syscall and
// returns whatever the kernel hands back, including short reads; callers
// loop as needed.
func Read(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}

		return n, err
	}
}

// Write wraps write(2), looping until every byte of p has been written or a
// non-EINTR error occurs.
func Write(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(fd, p)
		if err != nil {
			if err == unix.EINTR {
				continue
			}

			return err
		}

		p = p[n:]
	}

	return nil
}

// Seek wraps lseek(2), retrying on EINTR.
func Seek(fd int, offset int64, whence int) (int64, error) {
	for {
		off, err := unix.Seek(fd, offset, whence)
		if err == unix.EINTR {
			continue
		}

		return off, err
	}
}

// SeekData seeks to the next non-hole region at or after offset, using
// SEEK_DATA. It retries on EINTR.
func SeekData(fd int, offset int64) (int64, error) {
	return Seek(fd, offset, unix.SEEK_DATA)
}

// Fsync wraps fsync(2), retrying on EINTR.
func Fsync(fd int) error {
	for {
		err := unix.Fsync(fd)
		if err == unix.EINTR {
			continue
		}

		return err
	}
}

// Unlink wraps unlink(2), retrying on EINTR.
func Unlink(path string) error {
	for {
		err := unix.Unlink(path)
		if err == unix.EINTR {
			continue
		}

		return err
	}
}

// Ftruncate wraps ftruncate(2), retrying on EINTR. Extending a file this way
// creates a sparse hole past the previous end-of-file: no real disk blocks
// are consumed by the extension.
func Ftruncate(fd int, size int64) error {
	for {
		err := unix.Ftruncate(fd, size)
		if err == unix.EINTR {
			continue
		}

		return err
	}
}

// Fallocate wraps fallocate(2), retrying on EINTR.
func Fallocate(fd int, mode uint32, offset, length int64) error {
	for {
		err := unix.Fallocate(fd, mode, offset, length)
		if err == unix.EINTR {
			continue
		}

		return err
	}
}

// FallocateKeepSize reserves length bytes of physical space starting at
// offset without changing the file's apparent (logical) size.
func FallocateKeepSize(fd int, offset, length int64) error {
	return Fallocate(fd, unix.FALLOC_FL_KEEP_SIZE, offset, length)
}

// PunchHole converts the byte range [offset, offset+length) to a sparse
// hole, without changing the file's apparent size.
func PunchHole(fd int, offset, length int64) error {
	return Fallocate(fd, unix.FALLOC_FL_PUNCH_HOLE|unix.FALLOC_FL_KEEP_SIZE, offset, length)
}

// AllocateFromCurrent reserves length bytes of physical space starting at
// the file's current offset, without moving the offset or changing the
// file's apparent size.
func AllocateFromCurrent(fd int, length int64) error {
	cur, err := Seek(fd, 0, unix.SEEK_CUR)
	if err != nil {
		return err
	}

	return FallocateKeepSize(fd, cur, length)
}

// BlockSize reports the underlying filesystem's preferred I/O block size via
// fstatfs(2). It retries on EINTR.
func BlockSize(fd int) (uint64, error) {
	var buf unix.Statfs_t

	for {
		err := unix.Fstatfs(fd, &buf)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return 0, err
		}

		// Bsize is int64 on some platforms, int32/int64 on others; normalize
		// through an explicit conversion rather than relying on field width.
		if buf.Bsize < 0 {
			return 0, errors.New("sysx: filesystem reported a negative block size")
		}

		return uint64(buf.Bsize), nil
	}
}
