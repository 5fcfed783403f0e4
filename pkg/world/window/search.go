package window

import (
	"fmt"
	"slices"
	"strings"

	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

// Mode selects whether the search maximizes or minimizes the window count.
type Mode uint8

const (
	Maximize Mode = iota
	Minimize
)

func (m Mode) String() string {
	switch m {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode accepts "max", "maximize", "min" and "minimize" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want max or min)", s)
}

// Ordering is the outcome of comparing a window score against the best so far.
type Ordering int8

const (
	Worse Ordering = iota - 1
	Tie
	Better
)

// compare ranks score against best under mode.
func compare(score, best int, mode Mode) Ordering {
	d := score - best
	if mode == Minimize {
		d = -d
	}
	switch {
	case d > 0:
		return Better
	case d < 0:
		return Worse
	}
	return Tie
}

// Observer receives scan progress. done and total count window positions.
// Observers must not retain or mutate search state.
type Observer interface {
	Observe(done, total int)
}

// Params describes one window search.
type Params struct {
	Width, Height int
	Mode          Mode
	// Align constrains origins to multiples of Align on both axes. 1 disables it.
	Align    int
	Observer Observer
}

// Validate checks the window size, alignment and mode.
func (p Params) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindowSize, p.Width, p.Height)
	}
	if p.Align < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidAlignment, p.Align)
	}
	if p.Mode != Maximize && p.Mode != Minimize {
		return fmt.Errorf("unknown mode %v", p.Mode)
	}
	return nil
}

// Tally is the fold accumulator of a scan: the best score seen and every
// origin reaching it, in scan order.
type Tally struct {
	Best       int
	Candidates []chunkset.Pos
}

func (t *Tally) fold(pos chunkset.Pos, score int, mode Mode) {
	if len(t.Candidates) == 0 {
		t.Best = score
		t.Candidates = append(t.Candidates, pos)
		return
	}
	switch compare(score, t.Best, mode) {
	case Better:
		t.Best = score
		t.Candidates = append(t.Candidates[:0], pos)
	case Tie:
		t.Candidates = append(t.Candidates, pos)
	}
}

// alignUp returns the smallest multiple of a that is >= v.
func alignUp(v, a int) int {
	r := v % a
	if r < 0 {
		r += a
	}
	if r == 0 {
		return v
	}
	return v + a - r
}

// span counts the multiples of a in [lo, hi].
func span(lo, hi, a int) (first, n int) {
	first = alignUp(lo, a)
	if first > hi {
		return first, 0
	}
	return first, (hi-first)/a + 1
}

// Search scans every window origin that fits inside the bounding box and is
// aligned, x ascending then z ascending, and returns the best score with all
// origins that reach it.
func (g *Grid) Search(p Params) (*Tally, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return g.search(p)
}

// search runs Search on already validated params.
func (g *Grid) search(p Params) (*Tally, error) {
	b := g.bounds
	x0, nx := span(b.MinX, b.MinX+g.w-p.Width, p.Align)
	z0, nz := span(b.MinZ, b.MinZ+g.h-p.Height, p.Align)
	total := nx * nz
	if total == 0 {
		return nil, fmt.Errorf("%w: %dx%d window, align %d, bounding box %dx%d at (%d,%d)",
			ErrNoValidWindow, p.Width, p.Height, p.Align, g.w, g.h, b.MinX, b.MinZ)
	}

	t := &Tally{}
	for ix := 0; ix < nx; ix++ {
		x := x0 + ix*p.Align
		for iz := 0; iz < nz; iz++ {
			z := z0 + iz*p.Align
			t.fold(chunkset.Pos{X: x, Z: z}, g.Sum(x, z, p.Width, p.Height), p.Mode)
		}
		if p.Observer != nil {
			p.Observer.Observe((ix+1)*nz, total)
		}
	}
	return t, nil
}

// Members returns the positions of set inside the w×h window at origin,
// sorted by X then Z.
func Members(set *chunkset.Set, origin chunkset.Pos, w, h int) []chunkset.Pos {
	win := chunkset.Bounds{MinX: origin.X, MinZ: origin.Z, MaxX: origin.X + w - 1, MaxZ: origin.Z + h - 1}
	var out []chunkset.Pos
	set.Each(func(p chunkset.Pos) {
		if win.Contains(p) {
			out = append(out, p)
		}
	})
	slices.SortFunc(out, chunkset.Compare)
	return out
}
