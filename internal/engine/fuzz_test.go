package engine

import "testing"

func FuzzEncodeDecodeHeader(f *testing.F) {
	f.Add(uint64(512), uint64(512*32))
	f.Add(uint64(4096), uint64(4096))
	f.Add(uint64(MaxBlockSize), uint64(MaxCueSize))

	f.Fuzz(func(t *testing.T, blockSize, cueSize uint64) {
		if blockSize < MinBlockSize || blockSize > MaxBlockSize {
			t.Skip()
		}

		if cueSize < blockSize || cueSize%blockSize != 0 || cueSize > MaxCueSize {
			t.Skip()
		}

		encoded := encodeHeader(blockSize, cueSize)

		fk := &File{
			blockSize: DefaultBlockSize,
			buf:       make([]byte, DefaultBlockSize),
			io:        &memIO{data: encoded},
		}

		if err := fk.readHeader(); err != nil {
			t.Fatalf("readHeader rejected a validly encoded header: %v", err)
		}

		if fk.blockSize != blockSize || fk.cueSize != cueSize {
			t.Fatalf("got (%d,%d), want (%d,%d)", fk.blockSize, fk.cueSize, blockSize, cueSize)
		}
	})
}

// memIO is a tiny in-memory ioBackend good enough to drive readHeader: a
// single Read, plus a Seek that only needs to support the small backward
// rewind readHeader issues when the pre-read buffer overshoots blockSize.
type memIO struct {
	ioBackend

	data []byte
	pos  int
}

func (m *memIO) Read(p []byte) (int, error) {
	if m.pos >= len(m.data) {
		return 0, nil
	}

	n := copy(p, m.data[m.pos:])
	m.pos += n

	return n, nil
}

func (m *memIO) Seek(offset int64, whence int) (int64, error) {
	m.pos += int(offset)

	return int64(m.pos), nil
}
