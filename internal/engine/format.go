package engine

// On-disk format constants. Mirrors the BOB wire format: a four-byte magic
// followed by (tag, value) varint pairs terminated by tagEnd, then a stream
// of (kind, length, body) records.
const (
	MinBlockSize      = 512
	MaxBlockSize      = 4 << 20
	DefaultBlockSize  = 32 * 1024
	CueSizeMultiplier = 32
	MaxCueSize        = 1 << 30

	// maxRecordLength bounds how large a REWRITE body the parser will
	// attempt to allocate for. A corrupt length field past this point is
	// treated as a refused allocation rather than an attempt to actually
	// make() it.
	maxRecordLength = 1 << 34
)

var magic = [4]byte{'B', 'O', 'B', 0x00}

const (
	tagEnd       = 0
	tagBlockSize = 1
	tagCueSize   = 2
)

// recordKindNone is never a real record: it's the byte a cue's unwritten,
// sparse-extended tail reads back as. A genuine record's kind is always
// recordKindRewrite, so encountering this byte mid-stream means the parser
// has run off the end of what was ever actually written.
const recordKindNone = 0

const recordKindRewrite = 1

// resolveBlockSize implements the geometry rule: an explicitly configured,
// in-range block size wins; otherwise the filesystem's reported preferred
// I/O size is used if it's in range; otherwise DefaultBlockSize.
func resolveBlockSize(io ioBackend, configured uint64) uint64 {
	if configured >= MinBlockSize && configured <= MaxBlockSize {
		return configured
	}

	bs, err := io.BlockSize()
	if err != nil || bs < MinBlockSize || bs > MaxBlockSize {
		return DefaultBlockSize
	}

	return bs
}

// resolveCueSize implements the geometry rule: an explicitly configured cue
// size is clamped to [blockSize, MaxCueSize] and rounded down to a multiple
// of blockSize; an unconfigured (too-small) cue size defaults to
// CueSizeMultiplier times the block size.
func resolveCueSize(blockSize, configured uint64) uint64 {
	if configured < blockSize {
		return blockSize * CueSizeMultiplier
	}

	if configured > MaxCueSize {
		configured = MaxCueSize
	}

	return configured - configured%blockSize
}
