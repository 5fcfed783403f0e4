// Package loader reads chunk coordinate lists produced by the slime finder mod
// or by slimegen.
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/slimefinder/internal/codec"
	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

// Stdin is the source name that reads from standard input.
const Stdin = "-"

var chunkLine = regexp.MustCompile(`Chunk\s+\((-?\d+),(-?\d+)\)`)

// Stats describes what a parse consumed.
type Stats struct {
	Lines   int // lines read
	Matched int // lines that yielded a coordinate
	Unique  int // distinct coordinates in the resulting set
}

// Parse reads r line by line and collects the first "Chunk (x,z)" pair of each
// line. Lines without a match, or with numbers outside the int32 range, are
// skipped.
func Parse(r io.Reader) (*chunkset.Set, Stats, error) {
	set := chunkset.New()
	var st Stats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		st.Lines++
		p, ok := parseLine(sc.Bytes())
		if !ok {
			continue
		}
		if err := set.Add(p); err != nil {
			continue
		}
		st.Matched++
	}
	if err := sc.Err(); err != nil {
		return nil, st, fmt.Errorf("scan input: %w", err)
	}
	st.Unique = set.Len()
	return set, st, nil
}

func parseLine(line []byte) (chunkset.Pos, bool) {
	m := chunkLine.FindSubmatch(line)
	if m == nil {
		return chunkset.Pos{}, false
	}
	x, err := strconv.ParseInt(string(m[1]), 10, 32)
	if err != nil {
		return chunkset.Pos{}, false
	}
	z, err := strconv.ParseInt(string(m[2]), 10, 32)
	if err != nil {
		return chunkset.Pos{}, false
	}
	return chunkset.Pos{X: int(x), Z: int(z)}, true
}

// Loader fetches sources and parses them into chunk sets.
type Loader struct {
	log *slog.Logger
	pwd string
}

// New creates a Loader. Relative source paths resolve against the working
// directory at the time of the call.
func New(log *slog.Logger) (*Loader, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return &Loader{log: log, pwd: pwd}, nil
}

// Load reads src, which is "-" for stdin or any go-getter source: a local path,
// http(s) URL, s3::, gcs:: or git:: address. Compressed files (.gz, .zst,
// .lz4) are decoded by extension, or by their frame header when the name
// carries no known extension.
func (l *Loader) Load(ctx context.Context, src string) (*chunkset.Set, error) {
	if src == Stdin {
		return l.read(os.Stdin, src, codec.None)
	}

	dir, err := os.MkdirTemp("", "slimefinder-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "input")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  l.pwd,
		Mode: getter.ClientModeFile,
		// Decompression is handled by codec so local and remote inputs behave alike.
		Decompressors: map[string]getter.Decompressor{},
	}
	l.log.Debug("fetching input", "src", src)
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}

	f, err := os.Open(dst)
	if err != nil {
		return nil, fmt.Errorf("open fetched input: %w", err)
	}
	defer f.Close()
	return l.read(f, src, codec.Detect(src))
}

// read decodes r as typ. When typ is None the stream is sniffed first.
func (l *Loader) read(r io.Reader, src string, typ codec.Type) (*chunkset.Set, error) {
	if typ == codec.None {
		br := bufio.NewReader(r)
		typ = codec.Sniff(br)
		r = br
	}
	dr, err := codec.NewReader(r, typ)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	defer dr.Close()

	set, st, err := Parse(dr)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	l.log.Info("loaded chunks",
		"src", src,
		"codec", typ,
		"lines", st.Lines,
		"matched", st.Matched,
		"unique", st.Unique,
	)
	return set, nil
}
