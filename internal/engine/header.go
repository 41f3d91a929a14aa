package engine

import (
	"io"

	"github.com/arlojacobs/bobfile/internal/varint"
)

// encodeHeader builds the magic + (tag, value)* + END byte sequence for the
// given geometry.
func encodeHeader(blockSize, cueSize uint64) []byte {
	buf := make([]byte, 0, len(magic)+3*varint.MaxLen)

	buf = append(buf, magic[:]...)
	buf = varint.AppendEncode(buf, tagBlockSize)
	buf = varint.AppendEncode(buf, blockSize)
	buf = varint.AppendEncode(buf, tagCueSize)
	buf = varint.AppendEncode(buf, cueSize)
	buf = varint.AppendEncode(buf, tagEnd)

	return buf
}

// writeHeader buffers a fresh header for the file's current geometry.
func (f *File) writeHeader() error {
	return f.write(encodeHeader(f.blockSize, f.cueSize))
}

// readHeader parses the magic and geometry tags at the start of a cue,
// validating every invariant the format places on block size and cue size.
// On success it also applies the one-time buffer resize against the
// configured geometry: Open starts out assuming DefaultBlockSize before it
// knows any better, since the real block size lives inside the header it's
// trying to read.
func (f *File) readHeader() error {
	var got [4]byte

	if err := f.read(got[:]); err != nil {
		return err
	}

	if got != magic {
		return ErrCorrupt
	}

	var blockSize, cueSize uint64

	for {
		tag, err := f.readVarint()
		if err != nil {
			return err
		}

		switch tag {
		case tagBlockSize:
			if blockSize, err = f.readVarint(); err != nil {
				return err
			}
		case tagCueSize:
			if cueSize, err = f.readVarint(); err != nil {
				return err
			}
		case tagEnd:
			goto done
		default:
			return ErrCorrupt
		}
	}

done:
	if blockSize < MinBlockSize || blockSize > MaxBlockSize {
		return ErrCorrupt
	}

	if cueSize < blockSize || cueSize%blockSize != 0 || cueSize > MaxCueSize {
		return ErrCorrupt
	}

	if f.written > blockSize {
		delta := int64(blockSize) - int64(f.written)
		if _, err := f.io.Seek(delta, io.SeekCurrent); err != nil {
			return err
		}

		f.written = blockSize
	}

	if blockSize != f.blockSize {
		resized := make([]byte, blockSize)
		copy(resized, f.buf)
		f.buf = resized
		f.blockSize = blockSize
	}

	f.cueSize = cueSize

	return nil
}
