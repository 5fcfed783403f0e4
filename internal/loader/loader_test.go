package loader

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/slimefinder/internal/codec"
	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

const sample = `Slime Chunks found around chunk (0,0) with radius 4
Format: Chunk (x,z) - Block coordinates (x1,z1) to (x2,z2)
=====================================
Chunk (-2,1) - Blocks (-32,16) to (-17,31)
Chunk (-1,2) - Blocks (-16,32) to (-1,47)
Chunk (0,-2) - Blocks (0,-32) to (15,-17)
Chunk (3,0) - Blocks (48,0) to (63,15)
Chunk (3,0) - Blocks (48,0) to (63,15)
Chunk (99999999999,0) - Blocks (0,0) to (15,15)
garbage line
Chunk    (7,8) and Chunk (9,9)
=====================================
Total slime chunks found: 5
`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse(t *testing.T) {
	set, st, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 13, st.Lines)
	assert.Equal(t, 6, st.Matched)
	assert.Equal(t, 5, st.Unique)

	for _, p := range []chunkset.Pos{{X: -2, Z: 1}, {X: -1, Z: 2}, {X: 0, Z: -2}, {X: 3, Z: 0}, {X: 7, Z: 8}} {
		assert.True(t, set.Contains(p), "missing %v", p)
	}
	assert.False(t, set.Contains(chunkset.Pos{X: 9, Z: 9}), "only the first match per line counts")
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want chunkset.Pos
		ok   bool
	}{
		{"Chunk (1,2)", chunkset.Pos{X: 1, Z: 2}, true},
		{"prefix Chunk (-10,-20) suffix", chunkset.Pos{X: -10, Z: -20}, true},
		{"Chunk (1, 2)", chunkset.Pos{}, false},
		{"chunk (1,2)", chunkset.Pos{}, false},
		{"Chunk (2147483648,0)", chunkset.Pos{}, false},
		{"Chunk (-2147483648,2147483647)", chunkset.Pos{X: -2147483648, Z: 2147483647}, true},
		{"", chunkset.Pos{}, false},
	}
	for _, tt := range tests {
		got, ok := parseLine([]byte(tt.line))
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseLine(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	set, st, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, set.Len())
	assert.Zero(t, st.Lines)
}

func writeInput(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := codec.NewWriter(f, codec.Detect(name))
	require.NoError(t, err)
	_, err = io.WriteString(w, sample)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func TestLoadLocalFiles(t *testing.T) {
	l, err := New(discard())
	require.NoError(t, err)

	for _, name := range []string{"slime_chunks.txt", "slime_chunks.txt.gz", "slime_chunks.txt.zst", "slime_chunks.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			set, err := l.Load(context.Background(), writeInput(t, name))
			require.NoError(t, err)
			assert.Equal(t, 5, set.Len())
			assert.True(t, set.Contains(chunkset.Pos{X: 0, Z: -2}))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	l, err := New(discard())
	require.NoError(t, err)

	_, err = l.Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoadSniffsStreamCodec(t *testing.T) {
	l, err := New(discard())
	require.NoError(t, err)

	for _, typ := range []codec.Type{codec.None, codec.Gzip, codec.Zstd, codec.LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := codec.NewWriter(&buf, typ)
			require.NoError(t, err)
			_, err = io.WriteString(w, sample)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			set, err := l.read(&buf, Stdin, codec.None)
			require.NoError(t, err)
			assert.Equal(t, 5, set.Len())
			assert.True(t, set.Contains(chunkset.Pos{X: 3, Z: 0}))
		})
	}
}

func TestLoadSniffsExtensionlessFile(t *testing.T) {
	l, err := New(discard())
	require.NoError(t, err)

	gz := writeInput(t, "chunks.gz")
	path := filepath.Join(t.TempDir(), "chunks")
	require.NoError(t, os.Rename(gz, path))

	set, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, set.Len())
}
