package temper

import "fmt"

// Conventional buffer tags used by the evaluator constructors.  A
// replica that wraps both endpoints and the interpolation through one
// pool must use distinct tags so the scratch vectors never alias.
const (
	TagGradRef    = "gradient_ref_buffer"
	TagGradTarget = "gradient_target_buffer"
	TagGradInterp = "gradient_interp_buffer"
)

// Pool hands out named scratch buffers.  Get returns a buffer of
// exactly n elements that is stable for the lifetime of the pool:
// repeated calls with the same tag return the same storage, and
// distinct tags never share storage.  One pool belongs to one
// replica/chain; pools are not safe for concurrent use.
type Pool interface {
	Get(tag string, n int) []float64
}

// BufPool is a map-backed Pool.
type BufPool struct {
	bufs map[string][]float64
}

func NewBufPool() *BufPool {
	return &BufPool{bufs: map[string][]float64{}}
}

func (p *BufPool) Get(tag string, n int) []float64 {
	if b, ok := p.bufs[tag]; ok {
		if len(b) != n {
			panic(fmt.Sprintf("temper: buffer %q has len %v, want %v", tag, len(b), n))
		}
		return b
	}
	b := make([]float64, n)
	p.bufs[tag] = b
	return b
}
