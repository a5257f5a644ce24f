package lazer

import (
	"github.com/vovakirdan/lazer-showdown/internal/laser"
)

// beamAnim reveals the traced beams one cell every ticksPerCell ticks, then
// keeps the full beam on screen for linger ticks.
type beamAnim struct {
	results      []laser.Result
	tick         int
	ticksPerCell int
	linger       int
	longest      int
}

func newBeamAnim(results []laser.Result, ticksPerCell, linger int) *beamAnim {
	if ticksPerCell < 1 {
		ticksPerCell = 1
	}
	b := &beamAnim{results: results, ticksPerCell: ticksPerCell, linger: linger}
	for _, r := range results {
		b.longest = max(b.longest, len(r.Path))
	}
	return b
}

// advance moves the animation forward one tick and reports whether it is still running.
func (b *beamAnim) advance() bool {
	b.tick++
	return !b.done()
}

// revealed is the number of path cells currently visible per beam.
func (b *beamAnim) revealed() int {
	return min(b.tick/b.ticksPerCell+1, b.longest)
}

func (b *beamAnim) fullyDrawn() bool {
	return b.revealed() >= b.longest
}

func (b *beamAnim) done() bool {
	return b.tick >= (b.longest-1)*b.ticksPerCell+b.linger
}

// visible returns the results truncated to the revealed part of each path.
func (b *beamAnim) visible() []laser.Result {
	n := b.revealed()
	out := make([]laser.Result, len(b.results))
	for i, r := range b.results {
		out[i] = r
		if len(r.Path) > n {
			out[i].Path = r.Path[:n]
		}
	}
	return out
}
