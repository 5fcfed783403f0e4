package storage

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/slimefinder/internal/codec"
)

func newStorage() *Storage {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSaveJSON(t *testing.T) {
	s := newStorage()
	path := filepath.Join(t.TempDir(), "out", "report.json")

	in := map[string]int{"best": 3}
	require.NoError(t, s.SaveJSON(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, in, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileCommit(t *testing.T) {
	s := newStorage()
	dir := t.TempDir()

	for _, name := range []string{"chunks.txt", "chunks.txt.gz", "chunks.txt.zst", "chunks.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, err := s.Create(path)
			require.NoError(t, err)
			_, err = io.WriteString(f, "Chunk (1,2)\n")
			require.NoError(t, err)

			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err), "destination must not exist before commit")

			require.NoError(t, f.Commit())

			raw, err := os.Open(path)
			require.NoError(t, err)
			defer raw.Close()
			r, err := codec.NewReader(raw, codec.Detect(name))
			require.NoError(t, err)
			defer r.Close()
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "Chunk (1,2)\n", string(got))
		})
	}
}

func TestFileAbort(t *testing.T) {
	s := newStorage()
	dir := t.TempDir()
	path := filepath.Join(dir, "chunks.txt")

	f, err := s.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(f, "partial")
	require.NoError(t, err)
	f.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
