package temper

// BufferedEvaler adapts a Model to the Evaler capability using a single
// scratch vector obtained from a Pool at construction.  Every EvalGrad
// call writes the gradient into that same vector and returns it, so
// repeated evaluations do no heap allocation.  The scratch vector is
// sized to the model's dimension once and never resized.
type BufferedEvaler struct {
	m    Model
	grad []float64
}

// NewBufferedEvaler wraps m, borrowing a scratch vector from p under
// tag.  Wrapping both endpoints of an interpolation through the same
// pool requires distinct tags (see TagGradRef and TagGradTarget).
func NewBufferedEvaler(m Model, p Pool, tag string) *BufferedEvaler {
	return &BufferedEvaler{m: m, grad: p.Get(tag, m.Dim())}
}

func (ev *BufferedEvaler) Dim() int { return len(ev.grad) }

func (ev *BufferedEvaler) Eval(x []float64) float64 { return ev.m.LogDensity(x) }

// EvalGrad evaluates the enclosed model, overwriting the scratch vector
// with the gradient.  The returned slice is the scratch vector itself;
// it is invalidated by the next EvalGrad call.
func (ev *BufferedEvaler) EvalGrad(x []float64) (float64, []float64) {
	v := ev.m.LogDensityGrad(x, ev.grad)
	return v, ev.grad
}
