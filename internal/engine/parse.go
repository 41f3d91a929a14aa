package engine

import (
	"io"

	"github.com/arlojacobs/bobfile/internal/varint"
)

// BuildRewriteRecord encodes payload as a REWRITE record (kind byte, varint
// length, body) and reports the offset within the returned slice where the
// payload begins. Callers that want to expose payload without copying it a
// second time can slice record[offset:] instead of retaining payload itself.
func BuildRewriteRecord(payload []byte) (record []byte, offset int) {
	lenBuf := varint.AppendEncode(nil, uint64(len(payload)))

	record = make([]byte, 0, 1+len(lenBuf)+len(payload))
	record = append(record, recordKindRewrite)
	record = append(record, lenBuf...)
	offset = len(record)
	record = append(record, payload...)

	return record, offset
}

// parse replays the record stream starting at the current buffer position
// (immediately after the header) until end of file, keeping only the most
// recently seen REWRITE record: later records in the stream always supersede
// earlier ones.
//
// It returns that record's bytes in the same (kind, length, body) layout
// BuildRewriteRecord produces, along with the offset of its payload, or a nil
// record and offset 0 if the cue contains no REWRITE record at all (a
// freshly created, never-written file).
func (f *File) parse() (record []byte, offset int, err error) {
	for {
		eof, err := f.isEOF()
		if err != nil {
			return nil, 0, err
		}

		if eof {
			f.pos, f.written = f.blockSize, f.blockSize

			return record, offset, nil
		}

		kind, err := f.readVarint()
		if err != nil {
			return nil, 0, err
		}

		switch kind {
		case recordKindNone:
			// Create, and Set after starting a new cue, extend the cue's
			// first block to a full block on disk (so the header is
			// readable immediately). That extension reads back as zero, and
			// a real record's kind byte is never zero, so a zero kind here
			// means nothing past this point was ever written. The
			// descriptor is rewound to this byte so the next write lands
			// directly after the last real record instead of past the
			// zero tail, where a later parse would never reach it.
			back := int64(f.written-f.pos) + 1
			if _, err := f.io.Seek(-back, io.SeekCurrent); err != nil {
				return nil, 0, err
			}

			f.pos, f.written = f.blockSize, f.blockSize

			return record, offset, nil
		case recordKindRewrite:
			length, err := f.readVarint()
			if err != nil {
				return nil, 0, err
			}

			if length > maxRecordLength {
				return nil, 0, ErrOutOfMemory
			}

			lenBuf := varint.AppendEncode(nil, length)
			rebuilt := make([]byte, 1+len(lenBuf)+int(length))
			rebuilt[0] = recordKindRewrite
			copy(rebuilt[1:], lenBuf)
			payloadOffset := 1 + len(lenBuf)

			if length > 0 {
				if err := f.read(rebuilt[payloadOffset:]); err != nil {
					return nil, 0, err
				}
			}

			record, offset = rebuilt, payloadOffset
		default:
			return nil, 0, ErrCorrupt
		}
	}
}
