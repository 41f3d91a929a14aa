package engine

import (
	"os"

	"github.com/arlojacobs/bobfile/internal/sysx"
)

// Create makes a new BOB file at path, resolving blockSize and cueSize
// against the filesystem (0 for either means "let the engine choose"), and
// commits a fresh header for the first cue. It fails with ErrExists if path
// already exists.
//
// The first block is reserved with a keep-size fallocate, the header is
// flushed, and the file's logical size is extended to one block with
// ftruncate before Create returns, so the file is immediately observable on
// disk with its magic and geometry without writing the rest of the block.
func Create(path string, blockSize, cueSize uint64) (f *File, err error) {
	fd, err := openFD(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, err
	}

	backend := realIO{fd}

	ok := false
	defer func() {
		if !ok {
			_ = backend.Close()
			_ = sysx.Unlink(path)
		}
	}()

	resolvedBlockSize := resolveBlockSize(backend, blockSize)
	resolvedCueSize := resolveCueSize(resolvedBlockSize, cueSize)

	f = &File{
		io:        backend,
		blockSize: resolvedBlockSize,
		cueSize:   resolvedCueSize,
		buf:       make([]byte, resolvedBlockSize),
	}

	if err := backend.AllocateFromCurrent(int64(resolvedBlockSize)); err != nil {
		return nil, err
	}

	if err := f.writeHeader(); err != nil {
		return nil, err
	}

	if err := f.commit(); err != nil {
		return nil, err
	}

	if err := f.ensureBlockExtent(0); err != nil {
		return nil, err
	}

	ok = true

	return f, nil
}

// Open opens an existing BOB file, locating the most recent cue (the
// descriptor's first non-hole region), parsing its header, and replaying its
// record stream to recover the current blob, if any.
//
// It returns the recovered record in BuildRewriteRecord's layout (nil if the
// cue has no REWRITE record yet) and the offset of its payload within that
// slice.
func Open(path string) (f *File, record []byte, offset int, err error) {
	fd, err := openFD(path, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, 0, err
	}

	backend := realIO{fd}

	ok := false
	defer func() {
		if !ok {
			_ = backend.Close()
		}
	}()

	f = &File{
		io:        backend,
		blockSize: DefaultBlockSize,
		buf:       make([]byte, DefaultBlockSize),
	}

	if _, err := backend.SeekData(0); err != nil {
		return nil, nil, 0, err
	}

	if err := f.readHeader(); err != nil {
		return nil, nil, 0, err
	}

	record, offset, err = f.parse()
	if err != nil {
		return nil, nil, 0, err
	}

	ok = true

	return f, record, offset, nil
}
