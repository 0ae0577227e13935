package model

import "github.com/gonum/diff/fd"

// FD is a finite-difference gradient backend.  It adapts any plain log
// density function into a temper.Model using central differences, for
// targets where no analytic gradient is available.
type FD struct {
	F    func(x []float64) float64
	NDim int
}

func (m FD) Name() string { return "FD" }

func (m FD) Dim() int { return m.NDim }

func (m FD) LogDensity(x []float64) float64 { return m.F(x) }

func (m FD) LogDensityGrad(x, grad []float64) float64 {
	fd.Gradient(grad, m.F, x, nil)
	return m.F(x)
}
