// Package report renders window search results for people and for tools.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
	"github.com/OCharnyshevich/slimefinder/pkg/world/slime"
	"github.com/OCharnyshevich/slimefinder/pkg/world/window"
)

// BlockRange returns the inclusive block span covered by chunk coordinate c.
func BlockRange(c int) (lo, hi int) {
	lo = c * slime.BlocksPerChunk
	return lo, lo + slime.BlocksPerChunk - 1
}

// ChunkLine renders one chunk with its block range, in the same format the
// slime finder mod writes.
func ChunkLine(p chunkset.Pos) string {
	x1, x2 := BlockRange(p.X)
	z1, z2 := BlockRange(p.Z)
	return fmt.Sprintf("Chunk (%d,%d) - Blocks (%d,%d) to (%d,%d)", p.X, p.Z, x1, z1, x2, z2)
}

// FormatChunks renders chunks one per line, sorted by X then Z.
func FormatChunks(chunks []chunkset.Pos) string {
	sorted := slices.Clone(chunks)
	slices.SortFunc(sorted, chunkset.Compare)

	lines := make([]string, len(sorted))
	for i, p := range sorted {
		lines[i] = ChunkLine(p)
	}
	return strings.Join(lines, "\n")
}

// WriteSummary prints the winning window, its members and, when
// withCandidates is set, every tied origin with its distance from (0,0).
func WriteSummary(w io.Writer, res *window.Result, withCandidates bool) error {
	verb := "most"
	if res.Mode == window.Minimize {
		verb = "fewest"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Area with the %s slime chunks (%dx%d, align %d): top-left (%d,%d), count %d\n",
		verb, res.Width, res.Height, res.Align, res.Winner.X, res.Winner.Z, res.Best)
	fmt.Fprintf(&b, "Slime chunks in this area:\n")
	if len(res.Members) > 0 {
		b.WriteString(FormatChunks(res.Members))
		b.WriteByte('\n')
	}
	if withCandidates {
		fmt.Fprintf(&b, "\nAll %d optimal candidates:\n", len(res.Candidates))
		for _, c := range res.Candidates {
			fmt.Fprintf(&b, "(%d, %d) distance from origin: %.4f\n", c.X, c.Z, c.Distance())
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Chunk is the JSON form of a chunk position.
type Chunk struct {
	X      int    `json:"x"`
	Z      int    `json:"z"`
	Blocks [4]int `json:"blocks"` // x1, z1, x2, z2
}

// Candidate is an optimal origin with its distance from (0,0).
type Candidate struct {
	X        int     `json:"x"`
	Z        int     `json:"z"`
	Distance float64 `json:"distance"`
}

// Document is the machine-readable report of one search.
type Document struct {
	Source     string      `json:"source"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Mode       string      `json:"mode"`
	Align      int         `json:"align"`
	Best       int         `json:"best"`
	Winner     Chunk       `json:"winner"`
	Members    []Chunk     `json:"members"`
	Candidates []Candidate `json:"candidates"`
}

func chunkOf(p chunkset.Pos) Chunk {
	x1, x2 := BlockRange(p.X)
	z1, z2 := BlockRange(p.Z)
	return Chunk{X: p.X, Z: p.Z, Blocks: [4]int{x1, z1, x2, z2}}
}

// New builds the Document for res read from source.
func New(source string, res *window.Result) *Document {
	d := &Document{
		Source:     source,
		Width:      res.Width,
		Height:     res.Height,
		Mode:       res.Mode.String(),
		Align:      res.Align,
		Best:       res.Best,
		Winner:     chunkOf(res.Winner),
		Members:    make([]Chunk, 0, len(res.Members)),
		Candidates: make([]Candidate, 0, len(res.Candidates)),
	}
	for _, m := range res.Members {
		d.Members = append(d.Members, chunkOf(m))
	}
	for _, c := range res.Candidates {
		d.Candidates = append(d.Candidates, Candidate{X: c.X, Z: c.Z, Distance: c.Distance()})
	}
	return d
}
