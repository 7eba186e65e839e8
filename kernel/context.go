package kernel

// Context is the per-worker-thread scratch state a CellKernel reuses across
// queries to avoid allocating on every call. Its internal buffers are
// opaque to callers; only the lifecycle (New/Dims) is part of the
// exported contract.
//
// A Context holds no reference back to the container it serves — the
// container passes a Store on every call instead, so Context construction
// never races with insertion.
type Context struct {
	w, h int // scratch dimensions: (x_prd ? 2*nx+1 : nx) x (y_prd ? 2*ny+1 : ny)

	// ring is a candidate-list buffer allocated once by New.
	// RingSearchKernel does not read or write it.
	ring []ringCandidate
}

type ringCandidate struct {
	block, slot int
	di, dj      int
	distSq      float64
}

// New builds a Context sized to enumerate neighboring blocks out to the
// periodic wrap range in one pass, per the container's per-thread compute
// context contract: w = x_prd ? 2*nx+1 : nx, h = y_prd ? 2*ny+1 : ny.
func New(w, h int) *Context {
	return &Context{
		w:    w,
		h:    h,
		ring: make([]ringCandidate, 0, 16),
	}
}

// Dims reports the scratch dimensions this context was sized for.
func (c *Context) Dims() (w, h int) { return c.w, c.h }
