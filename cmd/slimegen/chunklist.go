package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/OCharnyshevich/slimefinder/internal/report"
	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
	"github.com/OCharnyshevich/slimefinder/pkg/world/slime"
)

const separator = "====================================="

// flushEvery matches how often the mod flushed its output.
const flushEvery = 100

type flusher interface {
	Flush() error
}

// writeChunkList scans the square of radius around center for slime chunks in
// seed and writes them in the slime finder mod's file format. It returns the
// number of chunk lines written, also when a write fails part way.
func writeChunkList(w io.Writer, log *slog.Logger, seed int64, center chunkset.Pos, radius int) (int, error) {
	if err := slime.CheckRegion(center, radius); err != nil {
		return 0, err
	}
	if _, err := fmt.Fprintf(w, "Slime Chunks found around chunk (%d,%d) with radius %d\n", center.X, center.Z, radius); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Format: Chunk (x,z) - Block coordinates (x1,z1) to (x2,z2)\n%s\n", separator); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	fl, _ := w.(flusher)
	var werr error
	written := 0
	n, err := slime.Scan(seed, center, radius, func(p chunkset.Pos) {
		if werr != nil {
			return
		}
		if _, werr = fmt.Fprintln(w, report.ChunkLine(p)); werr != nil {
			return
		}
		written++
		if written%flushEvery == 0 {
			if fl != nil {
				werr = fl.Flush()
			}
			log.Debug("processed slime chunks", "count", written)
		}
	})
	if err != nil {
		return written, err
	}
	if werr != nil {
		return written, fmt.Errorf("write chunk %d: %w", written+1, werr)
	}

	if _, err := fmt.Fprintf(w, "%s\nTotal slime chunks found: %d\n", separator, n); err != nil {
		return n, fmt.Errorf("write footer: %w", err)
	}
	return n, nil
}
