package bob_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arlojacobs/bobfile"
	"github.com/arlojacobs/bobfile/internal/engine"
)

func tempPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "state.bob")
}

func Test_Create_ThenOpen_WithNoSet_HasNoCurrent(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	h2, err := bob.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h2.Close() })

	require.Nil(t, h2.Current())
}

func Test_Set_ThenCurrent_ReturnsJustSetValue(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	require.NoError(t, h.Set([]byte("contents")))

	if diff := cmp.Diff([]byte("contents"), h.Current()); diff != "" {
		t.Fatalf("Current mismatch (-want +got):\n%s", diff)
	}
}

func Test_Set_ThenClose_ThenOpen_RecoversValue(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)

	require.NoError(t, h.Set([]byte("persisted value")))
	require.NoError(t, h.Close())

	h2, err := bob.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h2.Close() })

	require.Equal(t, []byte("persisted value"), h2.Current())
}

func Test_RepeatedSet_Converges_OnLastValue(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)

	for _, v := range []string{"one", "two", "three"} {
		require.NoError(t, h.Set([]byte(v)))
	}

	require.NoError(t, h.Close())

	h2, err := bob.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h2.Close() })

	require.Equal(t, []byte("three"), h2.Current())
}

func Test_Set_EmptyBlob_IsLegal(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)

	require.NoError(t, h.Set(nil))
	require.NoError(t, h.Close())

	h2, err := bob.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h2.Close() })

	require.Empty(t, h2.Current())
}

func Test_Create_Fails_When_PathAlreadyExists(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	_, err = bob.Create(bob.NewConfig(), path)
	require.ErrorIs(t, err, bob.ErrExists)
}

func Test_Open_Fails_When_FileIsCorrupted(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)
	require.NoError(t, h.Set([]byte("whatever")))
	require.NoError(t, h.Close())

	// Truncate deep into the header itself: the trailing bytes of the file
	// are an untouched sparse hole reserved by Create, so cutting from the
	// end wouldn't touch any real data at all.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:10], 0o600))

	_, err = bob.Open(path)
	require.ErrorIs(t, err, bob.ErrCorrupt)
}

func Test_Handle_Operations_Fail_After_Close(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	h, err := bob.Create(bob.NewConfig(), path)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	require.ErrorIs(t, h.Set([]byte("x")), bob.ErrBadHandle)
	require.ErrorIs(t, h.Flush(), bob.ErrBadHandle)
	require.ErrorIs(t, h.Close(), bob.ErrBadHandle)
}

func Test_Create_HonorsExplicitGeometry(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	cfg := bob.NewConfig()
	cfg.SetBlockSize(1024)
	cfg.SetCueSize(4096)

	h, err := bob.Create(cfg, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, info.Size(), int64(1024))
}

func Test_Set_LargeBlob_SurvivesCueRollover(t *testing.T) {
	t.Parallel()

	path := tempPath(t)

	cfg := bob.NewConfig()
	cfg.SetBlockSize(512)
	cfg.SetCueSize(512)

	h, err := bob.Create(cfg, path)
	require.NoError(t, err)

	payload := make([]byte, 10_000)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	require.NoError(t, h.Set(payload))
	require.NoError(t, h.Close())

	h2, err := bob.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h2.Close() })

	require.Equal(t, payload, h2.Current())
}

// ensure the internal engine package's record layout stays consistent with
// what the public API assumes.
func Test_BuildRewriteRecord_IsWhatBOBCurrentSlicesInto(t *testing.T) {
	t.Parallel()

	record, offset := engine.BuildRewriteRecord([]byte("abc"))
	require.Equal(t, []byte("abc"), record[offset:])
}
