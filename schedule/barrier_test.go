package schedule

import (
	"math"
	"testing"
)

func TestPiecewiseLinear(t *testing.T) {
	pl := NewPiecewiseLinear()
	// insertion order shouldn't matter
	pl.Add(1, 3)
	pl.Add(0, 0)
	pl.Add(0.5, 1)

	if pl.Len() != 3 {
		t.Errorf("Len() = %v, want 3", pl.Len())
	}
	if lo, hi := pl.Range(); lo != 0 || hi != 3 {
		t.Errorf("Range() = %v, %v, want 0, 3", lo, hi)
	}

	tests := []struct {
		beta float64
		want float64
	}{
		{beta: 0, want: 0},
		{beta: 0.25, want: 0.5},
		{beta: 0.5, want: 1},
		{beta: 0.75, want: 2},
		{beta: 1, want: 3},
		{beta: -1, want: 0}, // clamped below the first knot
		{beta: 2, want: 3},  // clamped above the last knot
	}
	for _, test := range tests {
		if got := pl.Eval(test.beta); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Eval(%v): want %v, got %v", test.beta, test.want, got)
		}
	}
}

func TestPiecewiseLinearReplace(t *testing.T) {
	pl := NewPiecewiseLinear()
	pl.Add(0, 0)
	pl.Add(0.5, 7)
	pl.Add(0.5, 1) // re-measurement replaces the old knot
	pl.Add(1, 2)

	if pl.Len() != 3 {
		t.Errorf("Len() = %v, want 3", pl.Len())
	}
	if got := pl.Eval(0.5); got != 1 {
		t.Errorf("Eval(0.5) = %v, want 1", got)
	}
}

func TestPiecewiseLinearNoKnots(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Eval on a knotless barrier did not panic")
		}
	}()
	NewPiecewiseLinear().Eval(0.5)
}

func TestPiecewiseLinearFn(t *testing.T) {
	pl := NewPiecewiseLinear()
	pl.Add(0, 0)
	if _, err := pl.Fn(); err == nil {
		t.Errorf("Fn() with a single knot did not fail")
	}

	pl.Add(0.5, 2)
	pl.Add(1, 1) // decreasing - broken statistics
	if _, err := pl.Fn(); err == nil {
		t.Errorf("Fn() with a decreasing barrier did not fail")
	}

	pl.Add(1, 3)
	fn, err := pl.Fn()
	if err != nil {
		t.Fatal(err)
	}
	if got := fn(0.25); got != 1 {
		t.Errorf("fn(0.25) = %v, want 1", got)
	}
}

func TestFromPiecewiseBarrier(t *testing.T) {
	// barrier knots sampled from lambda(beta) = 2*beta; linear
	// interpolation reproduces it exactly, so the adapted schedule
	// should match equal spacing.
	pl := NewPiecewiseLinear()
	for _, beta := range []float64{0, 0.9, 0.1, 0.4, 1} {
		pl.Add(beta, 2*beta)
	}
	fn, err := pl.Fn()
	if err != nil {
		t.Fatal(err)
	}

	n := 9
	s, err := FromBarrier(n, fn)
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, s)
	for i := 0; i < n; i++ {
		want := float64(i) / float64(n-1)
		if diff := math.Abs(s.At(i) - want); diff > 1e-9 {
			t.Errorf("grid[%v]: want %v, got %v", i, want, s.At(i))
		}
	}
}
