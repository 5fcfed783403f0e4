package window

import (
	"github.com/OCharnyshevich/slimefinder/pkg/world/chunkset"
)

// Result is the outcome of a complete window search.
type Result struct {
	Width, Height int
	Mode          Mode
	Align         int

	Best       int
	Candidates []chunkset.Pos // every origin reaching Best, in scan order
	Winner     chunkset.Pos
	Members    []chunkset.Pos // points inside the winning window, sorted
}

// SelectClosest returns the candidate nearest the origin. Equal distances keep
// the earliest candidate. ok is false for an empty slice.
func SelectClosest(candidates []chunkset.Pos) (winner chunkset.Pos, ok bool) {
	if len(candidates) == 0 {
		return winner, false
	}
	winner = candidates[0]
	best := winner.DistSq()
	for _, c := range candidates[1:] {
		if d := c.DistSq(); d < best {
			winner, best = c, d
		}
	}
	return winner, true
}

// Find builds the grid for set, searches it and resolves the winner.
// Params are checked before the grid is allocated.
func Find(set *chunkset.Set, p Params, opts ...Option) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g, err := NewGrid(set, opts...)
	if err != nil {
		return nil, err
	}
	return g.find(set, p)
}

// Find searches an already built grid. set must be the set g was built from.
func (g *Grid) Find(set *chunkset.Set, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return g.find(set, p)
}

func (g *Grid) find(set *chunkset.Set, p Params) (*Result, error) {
	t, err := g.search(p)
	if err != nil {
		return nil, err
	}
	winner, _ := SelectClosest(t.Candidates)
	return &Result{
		Width:      p.Width,
		Height:     p.Height,
		Mode:       p.Mode,
		Align:      p.Align,
		Best:       t.Best,
		Candidates: t.Candidates,
		Winner:     winner,
		Members:    Members(set, winner, p.Width, p.Height),
	}, nil
}
