package temper

import (
	"fmt"

	"github.com/gonum/blas/blas64"
)

// InterpDensity describes the log density interpolated between a
// reference (Beta == 0) and a target (Beta == 1):
//
//    logdensity(x) = (1-Beta)*ref(x) + Beta*target(x)
//
// The round controller owns the descriptor and may change Beta between
// iterations; evaluators read it on every call.
type InterpDensity struct {
	Beta   float64
	Ref    Model
	Target Model
}

// InterpEvaler evaluates the log density and gradient of an
// InterpDensity.  It owns two endpoint Evalers and one combination
// buffer; a fully buffered setup performs zero heap allocation per
// call.  An InterpEvaler is itself an Evaler, so interpolations can be
// nested.
type InterpEvaler struct {
	d      *InterpDensity
	ref    Evaler
	target Evaler
	buf    []float64
}

// NewInterpEvaler builds an evaluator for d over the given endpoint
// evaluators, borrowing the combination buffer from p under tag.  The
// tag must differ from any tag used by the endpoints within the same
// pool.  The endpoints must report equal dimensions.
func NewInterpEvaler(d *InterpDensity, ref, target Evaler, p Pool, tag string) (*InterpEvaler, error) {
	if ref.Dim() != target.Dim() {
		return nil, fmt.Errorf("temper: endpoint dimension mismatch: reference is %v, target is %v", ref.Dim(), target.Dim())
	}
	return &InterpEvaler{d: d, ref: ref, target: target, buf: p.Get(tag, ref.Dim())}, nil
}

func (ev *InterpEvaler) Dim() int { return ev.ref.Dim() }

func (ev *InterpEvaler) Eval(x []float64) float64 {
	beta := ev.d.Beta
	return (1-beta)*ev.ref.Eval(x) + beta*ev.target.Eval(x)
}

// EvalGrad returns the interpolated log density and gradient at x.  The
// gradient slice aliases the combination buffer and is overwritten by
// the next call.  Beta is read once and the weights 1-beta and beta are
// applied to value and gradient of each endpoint consistently.  Any
// error state from an endpoint (NaN, Inf) flows through untouched.
func (ev *InterpEvaler) EvalGrad(x []float64) (float64, []float64) {
	n := len(ev.buf)
	wtarget := ev.d.Beta
	wref := 1 - wtarget

	v, g := ev.ref.EvalGrad(x)
	logdens := wref * v
	copy(ev.buf, g)
	blas64.Scal(n, wref, vec(ev.buf))

	v, g = ev.target.EvalGrad(x)
	logdens += wtarget * v
	blas64.Axpy(n, wtarget, vec(g), vec(ev.buf))

	return logdens, ev.buf
}

func vec(data []float64) blas64.Vector { return blas64.Vector{Inc: 1, Data: data} }
