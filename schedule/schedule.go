// Package schedule builds and validates annealing schedules: the
// monotone partitions of [0,1] that decide where along the path from
// reference to target distribution the chains are placed.
package schedule

import (
	"fmt"
	"sort"
)

// CumFunc is a cumulative barrier: a monotone non-decreasing function
// over [0,1] measuring sampling difficulty accumulated along the path
// up to each point.  How the barrier is estimated is the round
// controller's business; this package only inverts it.
type CumFunc func(beta float64) float64

// Schedule is an immutable sorted partition of [0,1].  Grid point i is
// the annealing parameter of chain i.  A Schedule is safe to share
// read-only across concurrently running chains.
type Schedule struct {
	grids []float64
}

// New validates and copies grids into a Schedule.  grids must hold at
// least two non-decreasing values starting at exactly 0 and ending at
// exactly 1; anything else is a hard construction failure that should
// abort round setup.
func New(grids []float64) (Schedule, error) {
	if len(grids) < 2 {
		return Schedule{}, fmt.Errorf("schedule: need at least 2 grid points, got %v", len(grids))
	}
	if grids[0] != 0 {
		return Schedule{}, fmt.Errorf("schedule: first grid point is %v, want 0", grids[0])
	}
	if last := grids[len(grids)-1]; last != 1 {
		return Schedule{}, fmt.Errorf("schedule: last grid point is %v, want 1", last)
	}
	for i := 1; i < len(grids); i++ {
		if grids[i] < grids[i-1] {
			return Schedule{}, fmt.Errorf("schedule: grid points not sorted at index %v: %v < %v", i, grids[i], grids[i-1])
		}
	}
	return Schedule{grids: append([]float64{}, grids...)}, nil
}

// EquallySpaced returns the cold-start schedule of n evenly spaced grid
// points from 0 to 1 inclusive.
func EquallySpaced(n int) (Schedule, error) {
	if n < 2 {
		return Schedule{}, fmt.Errorf("schedule: need at least 2 chains, got %v", n)
	}
	grids := make([]float64, n)
	for i := range grids {
		grids[i] = float64(i) / float64(n-1)
	}
	grids[n-1] = 1
	return New(grids)
}

// FromBarrier returns the schedule of n grid points placed so that
// consecutive points are equally spaced in the barrier's own
// coordinate: [barrier(0), barrier(1)] is cut into n-1 equal segments
// and each cut is mapped back to a beta by inverting the barrier.
// Chains end up denser where difficulty accumulates faster.  A barrier
// with zero range (no difficulty anywhere) degenerates to equal
// spacing.
func FromBarrier(n int, barrier CumFunc) (Schedule, error) {
	if n < 2 {
		return Schedule{}, fmt.Errorf("schedule: need at least 2 chains, got %v", n)
	}

	lo, hi := barrier(0), barrier(1)
	if hi <= lo {
		return EquallySpaced(n)
	}

	grids := make([]float64, n)
	grids[n-1] = 1
	for i := 1; i < n-1; i++ {
		target := lo + (hi-lo)*float64(i)/float64(n-1)
		grids[i] = invert(barrier, target)
		// Flat barrier regions can invert to the same beta; keep the
		// sequence non-decreasing regardless.
		if grids[i] < grids[i-1] {
			grids[i] = grids[i-1]
		}
	}
	return New(grids)
}

// invert returns the smallest beta in [0,1] with barrier(beta) >=
// target, to within float64 resolution.  Bisection on a monotone
// function; picking the smallest beta keeps flat-region inverses
// deterministic.
func invert(barrier CumFunc, target float64) float64 {
	lo, hi := 0.0, 1.0
	for i := 0; i < 64; i++ {
		mid := 0.5 * (lo + hi)
		if barrier(mid) >= target {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

// NumChains returns the number of grid points.
func (s Schedule) NumChains() int { return len(s.grids) }

// At returns grid point i.
func (s Schedule) At(i int) float64 { return s.grids[i] }

// Grids returns a copy of the grid points.
func (s Schedule) Grids() []float64 {
	return append([]float64{}, s.grids...)
}

// Nearest returns the index of the grid point closest to beta.  Ties
// between two equidistant neighbors go to the lower index.
func (s Schedule) Nearest(beta float64) int {
	i := sort.SearchFloat64s(s.grids, beta)
	if i == 0 {
		return 0
	}
	if i == len(s.grids) {
		return len(s.grids) - 1
	}
	if beta-s.grids[i-1] <= s.grids[i]-beta {
		return i - 1
	}
	return i
}
