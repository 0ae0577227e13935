package schedule

import (
	"fmt"

	"github.com/petar/GoLLRB/llrb"
)

type knot struct {
	beta   float64
	lambda float64
}

func (k knot) Less(than llrb.Item) bool { return k.beta < than.(knot).beta }

// PiecewiseLinear assembles a cumulative barrier from measured
// (beta, lambda) knots.  Knots may be added in any order - per-interval
// statistics typically arrive per chain pair, not sorted - and are kept
// in an ordered tree.  Between knots the barrier is linearly
// interpolated; outside the knot span it is clamped to the end values.
type PiecewiseLinear struct {
	knots *llrb.LLRB
}

func NewPiecewiseLinear() *PiecewiseLinear {
	return &PiecewiseLinear{knots: llrb.New()}
}

// Add inserts a knot, replacing any existing knot at the same beta.
func (pl *PiecewiseLinear) Add(beta, lambda float64) {
	pl.knots.ReplaceOrInsert(knot{beta: beta, lambda: lambda})
}

// Len returns the number of knots.
func (pl *PiecewiseLinear) Len() int { return pl.knots.Len() }

// Range returns the barrier values at the first and last knot.  A
// barrier with no knots is unusable and panics here.
func (pl *PiecewiseLinear) Range() (lo, hi float64) {
	pl.mustKnots()
	return pl.knots.Min().(knot).lambda, pl.knots.Max().(knot).lambda
}

// Eval evaluates the interpolated barrier at beta.  A barrier with no
// knots is unusable and panics here.
func (pl *PiecewiseLinear) Eval(beta float64) float64 {
	pl.mustKnots()
	min := pl.knots.Min().(knot)
	if beta <= min.beta {
		return min.lambda
	}
	max := pl.knots.Max().(knot)
	if beta >= max.beta {
		return max.lambda
	}

	var lo, hi knot
	pl.knots.DescendLessOrEqual(knot{beta: beta}, func(i llrb.Item) bool {
		lo = i.(knot)
		return false
	})
	pl.knots.AscendGreaterOrEqual(knot{beta: beta}, func(i llrb.Item) bool {
		hi = i.(knot)
		return false
	})

	if hi.beta == lo.beta {
		return lo.lambda
	}
	frac := (beta - lo.beta) / (hi.beta - lo.beta)
	return lo.lambda + frac*(hi.lambda-lo.lambda)
}

func (pl *PiecewiseLinear) mustKnots() {
	if pl.knots.Len() == 0 {
		panic("schedule: barrier has no knots")
	}
}

// Fn finalizes the barrier into a CumFunc usable by FromBarrier.  It
// fails if fewer than two knots were added or if the knot values ever
// decrease with beta - a decreasing cumulative barrier means the
// caller's statistics are broken.
func (pl *PiecewiseLinear) Fn() (CumFunc, error) {
	if pl.knots.Len() < 2 {
		return nil, fmt.Errorf("schedule: barrier needs at least 2 knots, got %v", pl.knots.Len())
	}

	prev := pl.knots.Min().(knot)
	var bad error
	pl.knots.AscendGreaterOrEqual(prev, func(i llrb.Item) bool {
		k := i.(knot)
		if k.lambda < prev.lambda {
			bad = fmt.Errorf("schedule: barrier decreases at beta=%v: %v < %v", k.beta, k.lambda, prev.lambda)
			return false
		}
		prev = k
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return pl.Eval, nil
}
