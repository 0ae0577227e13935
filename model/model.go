// Package model provides differentiable log densities with closed-form
// gradients for exercising and testing annealing-path evaluators.
package model

import (
	"math"

	"github.com/gonum/blas"
	"github.com/gonum/blas/blas64"
	"github.com/gonum/matrix/mat64"
	"github.com/rwcarlsen/temper"
)

// Model is a temper.Model with a name for reporting.
type Model interface {
	temper.Model
	Name() string
}

var AllModels = []Model{
	Normal{Mu: []float64{0, 0}, Sigma: 1},
	Normal{Mu: []float64{1.5, -0.5, 3}, Sigma: 0.7},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
}

// Normal is an iid normal log density with common standard deviation.
type Normal struct {
	Mu    []float64
	Sigma float64
}

func (m Normal) Name() string { return "Normal" }

func (m Normal) Dim() int { return len(m.Mu) }

func (m Normal) LogDensity(x []float64) float64 {
	s2 := m.Sigma * m.Sigma
	lp := -0.5 * float64(len(m.Mu)) * math.Log(2*math.Pi*s2)
	for i, v := range x {
		d := v - m.Mu[i]
		lp -= d * d / (2 * s2)
	}
	return lp
}

func (m Normal) LogDensityGrad(x, grad []float64) float64 {
	s2 := m.Sigma * m.Sigma
	for i, v := range x {
		grad[i] = -(v - m.Mu[i]) / s2
	}
	return m.LogDensity(x)
}

// MVNorm is an unnormalized correlated gaussian log density
// parameterized by its precision (inverse covariance) matrix:
//
//    logdensity(x) = -1/2 * (x-mu)^T * P * (x-mu)
//
// The normalization constant is omitted - samplers only ever need log
// density differences and gradients.  An MVNorm keeps internal scratch
// vectors, so one instance belongs to one chain.
type MVNorm struct {
	mu   []float64
	prec blas64.General
	diff []float64
	py   []float64
}

func NewMVNorm(mu []float64, prec *mat64.SymDense) *MVNorm {
	n := len(mu)
	if r, _ := prec.Dims(); r != n {
		panic("model: mean and precision dimensions differ")
	}

	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = prec.At(i, j)
		}
	}

	return &MVNorm{
		mu:   append([]float64{}, mu...),
		prec: blas64.General{Rows: n, Cols: n, Stride: n, Data: data},
		diff: make([]float64, n),
		py:   make([]float64, n),
	}
}

func (m *MVNorm) Name() string { return "MVNorm" }

func (m *MVNorm) Dim() int { return len(m.mu) }

func (m *MVNorm) LogDensity(x []float64) float64 {
	n := len(m.mu)
	for i, v := range x {
		m.diff[i] = v - m.mu[i]
	}
	diffv := blas64.Vector{Inc: 1, Data: m.diff}
	pyv := blas64.Vector{Inc: 1, Data: m.py}
	blas64.Gemv(blas.NoTrans, 1, m.prec, diffv, 0, pyv)
	return -0.5 * blas64.Dot(n, diffv, pyv)
}

func (m *MVNorm) LogDensityGrad(x, grad []float64) float64 {
	n := len(m.mu)
	for i, v := range x {
		m.diff[i] = v - m.mu[i]
	}
	diffv := blas64.Vector{Inc: 1, Data: m.diff}
	gradv := blas64.Vector{Inc: 1, Data: grad}
	blas64.Gemv(blas.NoTrans, -1, m.prec, diffv, 0, gradv)
	// grad holds -P*(x-mu), so the density falls out of the dot product.
	return 0.5 * blas64.Dot(n, diffv, gradv)
}

// Rosenbrock is the classic banana-shaped density
//
//    logdensity(x) = -sum_i [ 100*(x[i+1]-x[i]^2)^2 + (1-x[i])^2 ]
//
// with its mode at [1 1 ... 1].
type Rosenbrock struct {
	NDim int
}

func (m Rosenbrock) Name() string { return "Rosenbrock" }

func (m Rosenbrock) Dim() int { return m.NDim }

func (m Rosenbrock) LogDensity(x []float64) float64 {
	f := 0.0
	for i := 0; i < len(x)-1; i++ {
		f += 100*math.Pow(x[i+1]-x[i]*x[i], 2) + math.Pow(1-x[i], 2)
	}
	return -f
}

func (m Rosenbrock) LogDensityGrad(x, grad []float64) float64 {
	n := len(x)
	for j := 0; j < n; j++ {
		grad[j] = 0
		if j < n-1 {
			grad[j] += 400*x[j]*(x[j+1]-x[j]*x[j]) + 2*(1-x[j])
		}
		if j > 0 {
			grad[j] -= 200 * (x[j] - x[j-1]*x[j-1])
		}
	}
	return m.LogDensity(x)
}
