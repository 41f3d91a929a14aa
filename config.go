package bob

// Config carries the block-size and cue-size geometry hints passed to
// Create. Both fields default to 0 ("let the engine choose"): an unset
// block size picks up the filesystem's preferred I/O size (or 32KiB if
// that can't be determined), and an unset cue size defaults to 32 times
// the resolved block size.
//
// The zero value is a valid, fully-auto Config; NewConfig exists only for
// callers who prefer a constructor to a literal.
type Config struct {
	blocksize uint64
	cuesize   uint64
}

// NewConfig returns a Config with both fields unset (auto).
func NewConfig() *Config {
	return &Config{}
}

// SetBlockSize sets the requested block size in bytes. A value outside
// [512, 4MiB] is ignored by the engine in favor of auto-resolution; Create
// does not validate it up front.
func (c *Config) SetBlockSize(size uint64) {
	c.blocksize = size
}

// BlockSize returns the requested block size, or 0 if c is nil or unset.
func (c *Config) BlockSize() uint64 {
	if c == nil {
		return 0
	}

	return c.blocksize
}

// SetCueSize sets the requested cue size in bytes.
func (c *Config) SetCueSize(size uint64) {
	c.cuesize = size
}

// CueSize returns the requested cue size, or 0 if c is nil or unset.
func (c *Config) CueSize() uint64 {
	if c == nil {
		return 0
	}

	return c.cuesize
}
