package codec

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"slime_chunks.txt", None},
		{"slime_chunks.txt.gz", Gzip},
		{"/tmp/a/B.TXT.ZST", Zstd},
		{"chunks.lz4", LZ4},
		{"https://example.com/dl/chunks.txt.gz?token=abc", Gzip},
		{"s3::https://s3.amazonaws.com/bucket/chunks.zst", Zstd},
		{"noext", None},
	}
	for _, tt := range tests {
		if got := Detect(tt.name); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	payload := strings.Repeat("Chunk (12,-34) - Blocks (192,-544) to (207,-529)\n", 200)

	for _, typ := range []Type{None, Gzip, Zstd, LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, typ)
			require.NoError(t, err)
			_, err = io.WriteString(w, payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if typ != None {
				assert.Less(t, buf.Len(), len(payload), "compressed output should be smaller")
			}

			r, err := NewReader(&buf, typ)
			require.NoError(t, err)
			defer r.Close()
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestNewReaderRejectsGarbageGzip(t *testing.T) {
	_, err := NewReader(strings.NewReader("not gzip"), Gzip)
	assert.Error(t, err)
}

func TestSniff(t *testing.T) {
	for _, typ := range []Type{Gzip, Zstd, LZ4} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, typ)
		require.NoError(t, err)
		_, err = io.WriteString(w, "Chunk (1,2)\n")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		br := bufio.NewReader(&buf)
		assert.Equal(t, typ, Sniff(br), "sniff %v", typ)

		r, err := NewReader(br, typ)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "Chunk (1,2)\n", string(got), "sniffing must not consume input")
	}

	tests := []struct {
		name string
		in   string
	}{
		{"plain", "Chunk (1,2)\n"},
		{"empty", ""},
		{"short gzip prefix", "\x1f"},
		{"partial zstd", "\x28\xb5\x2f"},
	}
	for _, tt := range tests {
		assert.Equal(t, None, Sniff(bufio.NewReader(strings.NewReader(tt.in))), tt.name)
	}
}
