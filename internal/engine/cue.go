package engine

import "io"

// cueRemaining reports how many bytes are left in the current cue before the
// next cue boundary, based on the descriptor's real current offset.
func (f *File) cueRemaining() (uint64, error) {
	cur, err := f.seekCurrent()
	if err != nil {
		return 0, err
	}

	rem := uint64(cur) % f.cueSize
	if rem == 0 {
		return 0, nil
	}

	return f.cueSize - rem, nil
}

// newCue seeks forward to the start of the next cue boundary, resets the
// buffer to empty, and buffers a fresh header there. It returns the absolute
// offset the new cue starts at.
func (f *File) newCue() (int64, error) {
	cur, err := f.seekCurrent()
	if err != nil {
		return 0, err
	}

	if rem := uint64(cur) % f.cueSize; rem != 0 {
		cur += int64(f.cueSize - rem)

		if _, err := f.io.Seek(cur, io.SeekStart); err != nil {
			return 0, err
		}
	}

	f.pos, f.written = 0, 0

	if err := f.writeHeader(); err != nil {
		return 0, err
	}

	return cur, nil
}

// zap reclaims the byte range before a newly started cue, converting it to a
// sparse hole. Offsets at or below 0 mean there is nothing behind the new
// cue to reclaim (the very first cue of the file).
func (f *File) zap(cueStart int64) error {
	if cueStart <= 0 {
		return nil
	}

	return f.io.PunchHole(0, cueStart)
}

// ensureBlockExtent makes sure the file's logical size reaches at least
// cueStart+blockSize, so a freshly started cue is immediately visible as
// real file content (magic + header readable by a stat+read) rather than
// trailing off past the apparent end of file. It never shrinks the file:
// ftruncate only fires when the descriptor's real offset hasn't already
// carried the file past that point, which happens naturally once a blob
// larger than one block has been written into the new cue.
func (f *File) ensureBlockExtent(cueStart int64) error {
	cur, err := f.seekCurrent()
	if err != nil {
		return err
	}

	target := cueStart + int64(f.blockSize)
	if target <= cur {
		return nil
	}

	return f.io.Ftruncate(target)
}

// Set writes a REWRITE record using the append-and-reclaim protocol: if the
// record fits in the space remaining in the current cue, it's appended in
// place; otherwise a new cue is started at the next cue boundary and the old
// cue's space is reclaimed as a sparse hole once the new one has been
// committed to the descriptor (Set does not fsync; see Flush).
func (f *File) Set(record []byte) error {
	remaining, err := f.cueRemaining()
	if err != nil {
		return err
	}

	startNewCue := remaining < uint64(len(record))

	var cueStart int64

	if startNewCue {
		cueStart, err = f.newCue()
		if err != nil {
			return err
		}
	}

	if err := f.write(record); err != nil {
		return err
	}

	if err := f.commit(); err != nil {
		return err
	}

	if startNewCue {
		if err := f.ensureBlockExtent(cueStart); err != nil {
			return err
		}

		if err := f.zap(cueStart); err != nil {
			return err
		}
	}

	return nil
}
