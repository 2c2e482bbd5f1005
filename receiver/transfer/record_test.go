package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenRecord_CreatesZero(t *testing.T) {
	dir := t.TempDir()

	rec, err := OpenRecord(dir, false, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = rec.Close() }()

	assert.Equal(t, uint64(0), rec.Value())

	info, err := os.Stat(filepath.Join(dir, RecordName))
	require.NoError(t, err)
	assert.Equal(t, int64(recordSize), info.Size())
}

func TestRecord_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()

	rec, err := OpenRecord(dir, true, zap.NewNop())
	require.NoError(t, err)

	for _, v := range []uint64{1, 400, 1 << 40} {
		require.NoError(t, rec.Save(v))
		assert.Equal(t, v, rec.Value())

		content, err := os.ReadFile(filepath.Join(dir, RecordName))
		require.NoError(t, err)
		assert.Len(t, content, recordSize)
		assert.Equal(t, v, recordByteOrder.Uint64(content))
	}
	require.NoError(t, rec.Close())

	rec, err = OpenRecord(dir, false, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = rec.Close() }()

	assert.Equal(t, uint64(1<<40), rec.Value())
}

func TestRecord_TornIsZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RecordName), []byte{0, 0, 1}, 0666))

	rec, err := OpenRecord(dir, false, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = rec.Close() }()

	assert.Equal(t, uint64(0), rec.Value())
}

func TestRecord_Remove(t *testing.T) {
	dir := t.TempDir()

	rec, err := OpenRecord(dir, false, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, rec.Save(10))

	require.NoError(t, rec.Remove())
	assert.NoError(t, rec.Close())

	_, err = os.Stat(filepath.Join(dir, RecordName))
	assert.True(t, os.IsNotExist(err))
}

func TestOpenRecord_MissingDirectory(t *testing.T) {
	_, err := OpenRecord(filepath.Join(t.TempDir(), "missing"), false, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenRecord_Fresh(t *testing.T) {
	dir := t.TempDir()

	rec, err := OpenRecord(dir, false, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, rec.Fresh())
	require.NoError(t, rec.Close())

	rec, err = OpenRecord(dir, false, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = rec.Close() }()
	assert.False(t, rec.Fresh())
}
