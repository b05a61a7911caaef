package bruinwalk

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Lane is one horizontal strip of the world. Lanes are drawn once and never
// change afterwards.
type Lane struct {
	Index     int
	Direction int     // +1 or -1, travel direction of the lane's scooter
	Speed     float64 // Always > 0
	Safe      bool    // Walkable grass with no scooter
}

// LaneParams controls how new lanes are drawn.
type LaneParams struct {
	SafeProbability float64
	SpeedMin        float64 // Inclusive
	SpeedMax        float64 // Exclusive
	SpeedFactor     float64 // Difficulty multiplier, 1 when neutral
}

// paramMark records the parameters in force from lane index on.
type paramMark struct {
	from   int
	params LaneParams
}

// LaneRegistry owns the lanes near the visible window [start, end]. Lanes
// live in an arena indexed by lane number; lanes far enough behind the
// window are evicted. Every lane is a pure function of the seed, its index
// and the parameters in force when it was first drawn, so an evicted lane
// the window walks back onto is restored exactly as it was.
type LaneRegistry struct {
	seed        uint64
	history     []paramMark // Sorted by from
	evictMargin int

	arena []Lane // arena[i] holds lane base+i
	base  int

	start int
	end   int
}

// NewLaneRegistry creates an empty registry with an empty window.
func NewLaneRegistry(seed int64, params LaneParams, evictMargin int) *LaneRegistry {
	r := &LaneRegistry{
		seed:        uint64(seed),
		evictMargin: max(evictMargin, 0),
		arena:       make([]Lane, 0, 64),
		start:       0,
		end:         -1,
	}
	r.SetParams(params)
	return r
}

// SetParams changes the parameters used for lanes generated from now on.
// Existing lanes are untouched.
func (r *LaneRegistry) SetParams(p LaneParams) {
	if p.SpeedFactor <= 0 {
		p.SpeedFactor = 1
	}
	from := r.next()
	if n := len(r.history); n > 0 {
		last := &r.history[n-1]
		switch {
		case last.params == p:
			return
		case last.from == from:
			last.params = p
			return
		}
	}
	r.history = append(r.history, paramMark{from: from, params: p})
}

// paramsAt returns the parameters lane index was drawn with.
func (r *LaneRegistry) paramsAt(index int) LaneParams {
	i, found := slices.BinarySearchFunc(r.history, index, func(m paramMark, target int) int {
		return m.from - target
	})
	if !found {
		i--
	}
	return r.history[max(i, 0)].params
}

// next returns the index of the next lane that has never been generated.
func (r *LaneRegistry) next() int {
	return r.base + len(r.arena)
}

// Generate draws lane index if it has not been generated yet. Lanes are
// generated in order, so any skipped indices below it are drawn first.
// Negative indices and already generated lanes are a no-op.
func (r *LaneRegistry) Generate(index int) {
	for i := r.next(); i <= index; i++ {
		r.arena = append(r.arena, r.draw(i))
	}
}

// draw derives lane index from its own PCG stream.
func (r *LaneRegistry) draw(index int) Lane {
	p := r.paramsAt(index)
	rng := rand.New(rand.NewPCG(r.seed, uint64(index)*0x9e3779b97f4a7c15))

	dir := -1
	if rng.Float64() > 0.5 {
		dir = 1
	}
	speed := p.SpeedMin + rng.Float64()*(p.SpeedMax-p.SpeedMin)
	safe := rng.Float64() < p.SafeProbability

	return Lane{
		Index:     index,
		Direction: dir,
		Speed:     speed * p.SpeedFactor,
		Safe:      safe,
	}
}

// ExtendWindow moves the far edge to newEnd, generating every lane up to and
// including it. A newEnd at or below the current end is ignored.
func (r *LaneRegistry) ExtendWindow(newEnd int) {
	if newEnd <= r.end {
		return
	}
	r.Generate(newEnd)
	r.end = newEnd
}

// RetreatEnd pulls the far edge back by one lane. The lane stays generated.
func (r *LaneRegistry) RetreatEnd() {
	r.end--
}

// ShrinkFront moves the near edge forward to newStart. It never moves the edge
// backwards and never regenerates lanes; lanes that fall more than the evict
// margin behind the new edge are released.
func (r *LaneRegistry) ShrinkFront(newStart int) {
	if newStart <= r.start {
		return
	}
	r.start = newStart
	r.evict()
}

// RetreatFront moves the near edge back by at most one lane, stopping at
// zero. A lane that was evicted is restored into the arena.
func (r *LaneRegistry) RetreatFront() {
	r.start = max(r.start-1, 0)
	r.restore(r.start)
}

// restore draws evicted lanes back into the arena down to index.
func (r *LaneRegistry) restore(index int) {
	if index < 0 || index >= r.base {
		return
	}
	back := make([]Lane, 0, r.base-index)
	for i := index; i < r.base; i++ {
		back = append(back, r.draw(i))
	}
	r.arena = slices.Insert(r.arena, 0, back...)
	r.base = index
}

func (r *LaneRegistry) evict() {
	drop := (r.start - r.evictMargin) - r.base
	if drop <= 0 {
		return
	}
	drop = min(drop, len(r.arena))
	r.arena = slices.Delete(r.arena, 0, drop)
	r.base += drop
}

// Window returns the visible lane bounds, inclusive. The window is empty
// when end < start.
func (r *LaneRegistry) Window() (start, end int) {
	return r.start, r.end
}

// Retained returns the range of lane indices still held in the arena,
// inclusive. hi < lo when nothing has been generated.
func (r *LaneRegistry) Retained() (lo, hi int) {
	return r.base, r.next() - 1
}

// Lane returns a retained lane.
func (r *LaneRegistry) Lane(index int) (Lane, bool) {
	if index < r.base || index >= r.next() {
		return Lane{}, false
	}
	return r.arena[index-r.base], true
}

// MustLane returns a retained lane and panics otherwise. Asking for a lane
// that was never generated or was already evicted is a logic error.
func (r *LaneRegistry) MustLane(index int) Lane {
	l, ok := r.Lane(index)
	if !ok {
		lo, hi := r.Retained()
		panic(fmt.Sprintf("bruinwalk: lane %d outside retained range [%d, %d]", index, lo, hi))
	}
	return l
}

// Visible appends the lanes of the current window to dst and returns it.
func (r *LaneRegistry) Visible(dst []Lane) []Lane {
	for i := max(r.start, 0); i <= r.end; i++ {
		dst = append(dst, r.MustLane(i))
	}
	return dst
}
