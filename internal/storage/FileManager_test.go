package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rundash/internal/structures"
	"rundash/internal/testutil"
)

func newTestFileManager(t *testing.T, name string, compressor *testutil.MockCompressor) *FileManager {
	conf := &structures.Config{Persistence: structures.Persistence{FilePath: filepath.Join(t.TempDir(), name)}}
	return NewFileManager(conf, compressor, &testutil.MockLogger{})
}

func TestFileManager_Save_CreatesFile(t *testing.T) {
	fm := newTestFileManager(t, "activities.csv", &testutil.MockCompressor{})

	require.NoError(t, fm.Save(sampleActivities()))

	_, err := os.Stat(fm.Path())
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(fm.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_Save_CreatesDirectory(t *testing.T) {
	conf := &structures.Config{Persistence: structures.Persistence{FilePath: filepath.Join(t.TempDir(), "nested", "data", "a.csv")}}
	fm := NewFileManager(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})

	require.NoError(t, fm.Save(sampleActivities()))
	_, err := os.Stat(fm.Path())
	assert.NoError(t, err)
}

func TestFileManager_Save_Overwrites(t *testing.T) {
	fm := newTestFileManager(t, "activities.csv", &testutil.MockCompressor{})

	require.NoError(t, fm.Save(sampleActivities()))
	require.NoError(t, fm.Save(sampleActivities()[:1]))

	loaded, err := fm.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestFileManager_Load_FileNotExist(t *testing.T) {
	fm := newTestFileManager(t, "missing.csv", &testutil.MockCompressor{})

	_, err := fm.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileManager_CompressError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress failed")
		},
	}
	fm := newTestFileManager(t, "err.csv", comp)

	err := fm.Save(sampleActivities())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "compress failed")
}

func TestFileManager_DecompressError(t *testing.T) {
	comp := &testutil.MockCompressor{
		DecompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("decompress failed")
		},
	}
	fm := newTestFileManager(t, "dec.csv", comp)
	require.NoError(t, os.WriteFile(fm.Path(), []byte("some data"), 0644))

	_, err := fm.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decompress failed")
}

func TestFileManager_ZstdRoundtrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	conf := &structures.Config{Persistence: structures.Persistence{FilePath: filepath.Join(t.TempDir(), "activities.csv.zst")}}
	fm := NewFileManager(conf, comp, &testutil.MockLogger{})
	defer fm.Close()

	require.NoError(t, fm.Save(sampleActivities()))

	raw, err := os.ReadFile(fm.Path())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4])

	loaded, err := fm.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Morning Run", loaded[0].Name)
}

func TestFileManager_PlainTableUnderZstdName(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	conf := &structures.Config{Persistence: structures.Persistence{FilePath: filepath.Join(t.TempDir(), "activities.csv.zst")}}
	fm := NewFileManager(conf, comp, &testutil.MockLogger{})
	defer fm.Close()

	require.NoError(t, os.WriteFile(fm.Path(), []byte("name,distance_km,moving_time,elevation_gain,date,coordinates\n"), 0644))

	_, err = fm.Load()
	assert.ErrorIs(t, err, ErrNotCompressed)
}

func TestFileManager_Close(t *testing.T) {
	comp := &testutil.MockCompressor{}
	fm := newTestFileManager(t, "a.csv", comp)
	fm.Close()
	assert.True(t, comp.Closed)
}
