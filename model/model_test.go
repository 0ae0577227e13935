package model

import (
	"math"
	"testing"

	"github.com/gonum/diff/fd"
	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

func testState(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.3*float64(i) - 0.5
	}
	return x
}

func TestGradients(t *testing.T) {
	eps := 1e-5

	models := append([]Model{}, AllModels...)
	models = append(models, FD{NDim: 4, F: func(x []float64) float64 {
		s := 0.0
		for _, v := range x {
			s += math.Cos(v)
		}
		return s
	}})
	models = append(models, NewMVNorm(
		[]float64{0.5, -1},
		mat64.NewSymDense(2, []float64{2, 0.5, 0.5, 1}),
	))

	for _, m := range models {
		x := testState(m.Dim())
		grad := make([]float64, m.Dim())
		v := m.LogDensityGrad(x, grad)

		if want := m.LogDensity(x); math.Abs(v-want) > 1e-10 {
			t.Errorf("[FAIL:%v] LogDensityGrad value %v, LogDensity %v", m.Name(), v, want)
		}

		numeric := make([]float64, m.Dim())
		fd.Gradient(numeric, m.LogDensity, x, nil)
		for i := range grad {
			if diff := math.Abs(grad[i] - numeric[i]); diff > eps*(1+math.Abs(numeric[i])) {
				t.Errorf("[FAIL:%v] grad[%v]: analytic %v, numeric %v", m.Name(), i, grad[i], numeric[i])
			}
		}
	}
}

func TestMVNormGrad(t *testing.T) {
	mu := []float64{1, -2}
	prec := mat64.NewSymDense(2, []float64{2, 0.5, 0.5, 1})
	m := NewMVNorm(mu, prec)

	x := []float64{2, 0}
	grad := make([]float64, 2)
	v := m.LogDensityGrad(x, grad)

	// by hand: diff = [1 2], grad = -P*diff, v = -diff.P.diff/2
	d := []float64{x[0] - mu[0], x[1] - mu[1]}
	want := []float64{
		-(2*d[0] + 0.5*d[1]),
		-(0.5*d[0] + 1*d[1]),
	}
	for i := range grad {
		if math.Abs(grad[i]-want[i]) > 1e-12 {
			t.Errorf("grad[%v] = %v, want %v", i, grad[i], want[i])
		}
	}
	wantv := 0.5 * (d[0]*want[0] + d[1]*want[1])
	if math.Abs(v-wantv) > 1e-12 {
		t.Errorf("value = %v, want %v", v, wantv)
	}
}

func TestMVNormAgainstDistmv(t *testing.T) {
	// MVNorm is unnormalized, so compare log density differences
	// against an independent (normalized) implementation.
	mu := []float64{0.5, -1, 2}
	cov := mat64.NewSymDense(3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})

	dn, ok := distmv.NewNormal(mu, cov, nil)
	if !ok {
		t.Fatal("distmv.NewNormal failed")
	}
	m := NewMVNorm(mu, cov) // identity: precision == covariance

	x := []float64{0.1, 0.2, -0.3}
	y := []float64{-1, 3, 0.5}

	got := m.LogDensity(x) - m.LogDensity(y)
	want := dn.LogProb(x) - dn.LogProb(y)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("log density difference = %v, want %v", got, want)
	}
}

func TestRosenbrockMode(t *testing.T) {
	for _, n := range []int{2, 5, 10} {
		m := Rosenbrock{NDim: n}
		mode := make([]float64, n)
		for i := range mode {
			mode[i] = 1
		}

		if v := m.LogDensity(mode); v != 0 {
			t.Errorf("n=%v: log density at mode is %v, want 0", n, v)
		}

		grad := make([]float64, n)
		m.LogDensityGrad(mode, grad)
		for i, g := range grad {
			if g != 0 {
				t.Errorf("n=%v: grad[%v] at mode is %v, want 0", n, i, g)
			}
		}
	}
}
