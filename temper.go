// Package temper provides the annealing-path core of a population
// sampler: differentiable log-density capabilities, buffer-reusing
// endpoint evaluators, and the interpolated evaluator that combines a
// reference and a target log density at a path position beta.  The
// annealing schedule itself lives in the schedule subpackage.
package temper

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
)

// Rand is the random number source used by InitStates.  Replace it to
// seed or to substitute a different generator.
var Rand Rng = rand.New(rand.NewSource(1))

type Rng interface {
	Float64() float64
}

// Model is a differentiable log density.  Implementations are the
// differentiation backends (analytic, finite-difference, etc.); all a
// backend has to provide is plain evaluation, evaluation with the
// gradient written into caller-supplied storage, and its dimension.
type Model interface {
	// Dim returns the number of variables the model is defined over.
	Dim() int

	// LogDensity returns the log density at x.  len(x) must equal
	// Dim().  Numerical failures (NaN, -Inf) are returned as-is.
	LogDensity(x []float64) float64

	// LogDensityGrad computes the log density and its gradient at x.
	// The gradient is written into grad, which must have length Dim().
	LogDensityGrad(x, grad []float64) float64
}

// Evaler is the buffered evaluation capability consumed by the
// interpolated evaluator.  Unlike Model, EvalGrad owns its gradient
// storage: the returned slice aliases an internal buffer and is only
// valid until the next EvalGrad call on the same Evaler.  Callers that
// need the gradient past that point must copy it.
type Evaler interface {
	Dim() int
	Eval(x []float64) float64
	EvalGrad(x []float64) (float64, []float64)
}

func hashState(x []float64) [sha1.Size]byte {
	data := make([]byte, len(x)*8)
	for i, v := range x {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return sha1.Sum(data)
}

// CacheModel wraps a Model and memoizes plain log density values by
// state.  Gradient evaluations bypass the cache - they overwrite
// caller storage and are assumed to be on the hot path where the state
// is fresh every call anyway.
type CacheModel struct {
	m     Model
	cache map[[sha1.Size]byte]float64
	// Hits counts cache hits since construction.
	Hits int
}

func NewCacheModel(m Model) *CacheModel {
	return &CacheModel{
		m:     m,
		cache: map[[sha1.Size]byte]float64{},
	}
}

func (cm *CacheModel) Dim() int { return cm.m.Dim() }

func (cm *CacheModel) LogDensity(x []float64) float64 {
	h := hashState(x)
	if v, ok := cm.cache[h]; ok {
		cm.Hits++
		return v
	}
	v := cm.m.LogDensity(x)
	cm.cache[h] = v
	return v
}

func (cm *CacheModel) LogDensityGrad(x, grad []float64) float64 {
	return cm.m.LogDensityGrad(x, grad)
}

// TraceModel prints every evaluation along with a running count.
type TraceModel struct {
	Model
	Count int
}

func NewTraceModel(m Model) *TraceModel { return &TraceModel{Model: m} }

func (tm *TraceModel) LogDensity(x []float64) float64 {
	v := tm.Model.LogDensity(x)
	tm.print(x, v)
	return v
}

func (tm *TraceModel) LogDensityGrad(x, grad []float64) float64 {
	v := tm.Model.LogDensityGrad(x, grad)
	tm.print(x, v)
	return v
}

func (tm *TraceModel) print(x []float64, v float64) {
	tm.Count++
	fmt.Print(tm.Count, " ")
	for _, val := range x {
		fmt.Print(val, " ")
	}
	fmt.Println("    ", v)
}

// InitStates generates n random chain states uniformly distributed in
// the box bounds defined by low and up.  The number of dimensions is
// len(low).  Rand is used for random numbers.
func InitStates(n int, low, up []float64) [][]float64 {
	if len(low) != len(up) {
		panic("temper: low and up vectors are not same length")
	}

	states := make([][]float64, n)
	for i := range states {
		x := make([]float64, len(low))
		for j := range x {
			x[j] = low[j] + Rand.Float64()*(up[j]-low[j])
		}
		states[i] = x
	}
	return states
}
