package engine

import (
	"io"

	"github.com/arlojacobs/bobfile/internal/varint"
)

// File is an open BOB file: a descriptor plus the single block-sized buffer
// through which every byte on disk is read or written.
//
// buf holds the current block. written is how many of its bytes are known
// good on disk (or, while parsing, known read from disk); pos is the next
// byte to fill. pos <= blockSize always; written <= blockSize always.
type File struct {
	io        ioBackend
	blockSize uint64
	cueSize   uint64
	buf       []byte
	pos       uint64
	written   uint64
}

// read fills dst from the buffer, refilling from disk one block at a time as
// needed. A genuine end-of-file while dst is not yet full is corruption: the
// caller was always expecting more bytes (a header field, a varint, a record
// body) than the file actually contains.
func (f *File) read(dst []byte) error {
	for len(dst) > 0 {
		if f.pos < f.written {
			n := copy(dst, f.buf[f.pos:f.written])
			f.pos += uint64(n)
			dst = dst[n:]

			continue
		}

		if f.written == f.blockSize {
			f.pos, f.written = 0, 0
		}

		n, err := f.io.Read(f.buf[f.written:f.blockSize])
		if err != nil {
			return err
		}

		if n == 0 {
			return ErrCorrupt
		}

		f.written += uint64(n)
	}

	return nil
}

// isEOF reports whether the record stream has reached its true end. It may
// only be called at a record boundary (pos == written); calling it
// mid-record would misinterpret a block-boundary refill as end-of-file.
func (f *File) isEOF() (bool, error) {
	if f.pos != f.written {
		return false, nil
	}

	if f.written == f.blockSize {
		f.pos, f.written = 0, 0
	}

	n, err := f.io.Read(f.buf[f.written:f.blockSize])
	if err != nil {
		return false, err
	}

	if n == 0 {
		return true, nil
	}

	f.written += uint64(n)

	return false, nil
}

// readVarint decodes one varint from the buffered stream, byte at a time.
func (f *File) readVarint() (uint64, error) {
	var (
		d varint.Decoder
		b [1]byte
	)

	for {
		if err := f.read(b[:]); err != nil {
			return 0, err
		}

		done, ok := d.Step(b[0])
		if !ok {
			return 0, ErrCorrupt
		}

		if done {
			return d.Value(), nil
		}
	}
}

// write appends p to the logical stream. When it fits in the remainder of
// the current block it's simply buffered; otherwise the space it will need
// (rounded up to a block multiple) is reserved up front, the dirty prefix of
// the current block is flushed, as many whole blocks as now fit are written
// straight through, and the remainder starts the next block.
func (f *File) write(p []byte) error {
	count := uint64(len(p))

	if f.pos+count <= f.blockSize {
		copy(f.buf[f.pos:f.pos+count], p)
		f.pos += count

		return nil
	}

	allocate := f.pos + count
	if rem := allocate % f.blockSize; rem != 0 {
		allocate += f.blockSize - rem
	}

	if err := f.io.AllocateFromCurrent(int64(allocate - f.pos)); err != nil {
		return err
	}

	if f.written != f.pos {
		if err := f.io.Write(f.buf[f.written:f.pos]); err != nil {
			return err
		}
	}

	surplus := f.blockSize - f.pos
	numBlocks := (count - surplus) / f.blockSize
	toWrite := surplus + numBlocks*f.blockSize

	if err := f.io.Write(p[:toWrite]); err != nil {
		return err
	}

	f.written = 0
	copy(f.buf, p[toWrite:])
	f.pos = count - toWrite

	return nil
}

// commit flushes the dirty prefix of the buffer ([written, pos)) to disk.
func (f *File) commit() error {
	if f.written == f.pos {
		return nil
	}

	if err := f.io.Write(f.buf[f.written:f.pos]); err != nil {
		return err
	}

	f.written = f.pos

	return nil
}

// Flush commits any buffered bytes and fsyncs the descriptor.
func (f *File) Flush() error {
	if err := f.commit(); err != nil {
		return err
	}

	return f.io.Fsync()
}

// Close commits, fsyncs, and closes, returning the first error encountered.
// Later steps still run even after an earlier one fails, so the descriptor
// is never leaked.
func (f *File) Close() error {
	var firstErr error

	if err := f.commit(); err != nil {
		firstErr = err
	}

	if err := f.io.Fsync(); err != nil && firstErr == nil {
		firstErr = err
	}

	if err := f.io.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	f.buf = nil

	return firstErr
}

// seekCurrent is a small helper used throughout cue.go.
func (f *File) seekCurrent() (int64, error) {
	return f.io.Seek(0, io.SeekCurrent)
}
