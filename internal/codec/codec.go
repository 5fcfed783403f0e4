// Package codec wraps streams with the compression implied by a file name.
package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a stream compression format.
type Type uint8

const (
	None Type = iota
	Gzip
	Zstd
	LZ4
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Detect infers the format from the extension of name, which may be a plain
// path or a URL with a query string.
func Detect(name string) Type {
	if u, err := url.Parse(name); err == nil && u.Path != "" {
		name = u.Path
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return None
}

var magics = []struct {
	t     Type
	magic []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
}

// Sniff infers the format from the leading bytes of br without consuming
// them. Streams too short or not matching a known frame header are None.
func Sniff(br *bufio.Reader) Type {
	head, _ := br.Peek(4)
	for _, m := range magics {
		if bytes.HasPrefix(head, m.magic) {
			return m.t
		}
	}
	return None
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// NewReader returns a reader that decompresses r as t. Closing it releases the
// decoder but not r.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return readCloser{Reader: zr, close: func() error { zr.Close(); return nil }}, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("unsupported codec %v", t)
}

// NewWriter returns a writer that compresses into w as t. Close flushes the
// encoder but does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("open zstd writer: %w", err)
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("unsupported codec %v", t)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
