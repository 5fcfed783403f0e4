package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/OCharnyshevich/slimefinder/internal/codec"
)

// Storage writes report and chunk list files. Every write lands atomically:
// readers see either the previous file or the complete new one.
type Storage struct {
	log *slog.Logger
}

// New creates a new Storage.
func New(log *slog.Logger) *Storage {
	return &Storage{log: log}
}

// SaveJSON writes v to path as indented JSON atomically, creating parent
// directories as needed.
func (s *Storage) SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	s.log.Info("saved report", "path", path, "size", humanize.IBytes(uint64(len(data))))
	return nil
}

// File is a buffered, optionally compressed file that only replaces its
// destination on Commit.
type File struct {
	path string
	tmp  *os.File
	enc  io.WriteCloser
	buf  *bufio.Writer
	log  *slog.Logger
}

// Create opens a File for path. The compression is chosen by extension.
func (s *Storage) Create(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	enc, err := codec.NewWriter(tmp, codec.Detect(path))
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return &File{path: path, tmp: tmp, enc: enc, buf: bufio.NewWriter(enc), log: s.log}, nil
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

// Flush pushes buffered bytes through the encoder.
func (f *File) Flush() error {
	return f.buf.Flush()
}

// Commit flushes everything and moves the file into place.
func (f *File) Commit() error {
	if err := f.buf.Flush(); err != nil {
		f.Abort()
		return fmt.Errorf("flush %s: %w", f.path, err)
	}
	if err := f.enc.Close(); err != nil {
		f.Abort()
		return fmt.Errorf("close encoder for %s: %w", f.path, err)
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		os.Remove(f.tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}
	f.log.Info("saved file", "path", f.path)
	return nil
}

// Abort discards the file. It is safe to call after Commit failed.
func (f *File) Abort() {
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}
