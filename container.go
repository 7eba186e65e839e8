// Package voro2d implements a two-dimensional, block-partitioned particle
// container: the same core abstraction as voro++'s container_2d /
// container_poly_2d, generalized into one type parameterized by a
// radius-tracking flag rather than duplicated per variant. It supports
// concurrent bulk insertion with overflow reconciliation, periodic wrap on
// either axis, nearest-particle lookup delegated to a pluggable
// kernel.CellKernel, and read-only iteration over stored particles.
//
// Full Voronoi cell construction, file-format emission, deterministic
// ordering side-channels, and wall-predicate plug-ins beyond a single
// default-true hook are out of scope for this package — see kernel.CellKernel
// and SetWallPredicate/PointInside for the seams where those collaborators
// attach.
package voro2d

import (
	"sync"

	"github.com/haldane-labs/voro2d/internal/logx"
	"github.com/haldane-labs/voro2d/kernel"
)

// Container is the block-partitioned particle store described by the
// package doc. The zero value is not usable; construct one with New.
type Container struct {
	cfg Config

	nx, ny, nxy        int
	boxx, boxy         float64
	xsp, ysp           float64
	stride             int

	blocks   []*block
	overflow overflowBuffer

	// maxRadius is mutated only by the serial reconcile (parallel path) or
	// the serial Put (non-parallel path) — never during a fast-path write.
	maxRadius float64
	// maxR holds one scratch slot per worker thread, folded into
	// maxRadius during PutReconcileOverflow and reset to 0 there.
	maxR []float64

	kernel   kernel.CellKernel
	contexts []*kernel.Context
	nt       int

	// wallPredicate implements the single pluggable "is this point inside
	// the walls" capability; defaults to always-true.
	wallPredicate func(x, y float64) bool
}

// New constructs a Container from cfg, allocating init_mem per block and
// building one compute context per worker thread in parallel.
func New(cfg Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		cfg:           cfg,
		nx:            cfg.NX,
		ny:            cfg.NY,
		nxy:           cfg.NX * cfg.NY,
		boxx:          (cfg.BX - cfg.AX) / float64(cfg.NX),
		boxy:          (cfg.BY - cfg.AY) / float64(cfg.NY),
		stride:        cfg.stride(),
		kernel:        kernel.RingSearchKernel{},
		nt:            cfg.NumberThread,
		wallPredicate: func(x, y float64) bool { return true },
	}
	c.xsp = 1 / c.boxx
	c.ysp = 1 / c.boxy

	c.blocks = make([]*block, c.nxy)
	for i := range c.blocks {
		c.blocks[i] = newBlock(cfg.InitMem, c.stride)
	}
	if cfg.Radius {
		c.maxR = make([]float64, c.nt)
	}

	w, h := c.contextDims()
	c.contexts = buildContexts(c.nt, w, h)
	return c, nil
}

// contextDims returns the per-thread scratch dimensions required to
// enumerate neighboring blocks out to the periodic wrap range in one pass.
func (c *Container) contextDims() (w, h int) {
	w = c.nx
	if c.cfg.XPeriodic {
		w = 2*c.nx + 1
	}
	h = c.ny
	if c.cfg.YPeriodic {
		h = 2*c.ny + 1
	}
	return w, h
}

// buildContexts constructs n compute contexts in parallel, one goroutine
// per worker, so each context is built by the goroutine that will own it.
func buildContexts(n int, w, h int) []*kernel.Context {
	ctxs := make([]*kernel.Context, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ctxs[i] = kernel.New(w, h)
		}(i)
	}
	wg.Wait()
	return ctxs
}

// ChangeNumberThread destroys all compute contexts and rebuilds them for
// newNt workers, resizing the radius variant's per-thread max-radius
// scratch. Must not be called concurrently with any insertion or query —
// that is an unchecked API violation, not a condition this package
// defends against.
func (c *Container) ChangeNumberThread(newNt int) {
	if newNt <= 0 {
		panic("voro2d: ChangeNumberThread requires a positive thread count")
	}
	c.contexts = nil
	c.nt = newNt
	w, h := c.contextDims()
	c.contexts = buildContexts(c.nt, w, h)
	if c.cfg.Radius {
		c.maxR = make([]float64, c.nt)
	}
}

// Clear resets every block's live count to zero and, for the radius
// variant, resets max_radius to zero. Capacities are preserved. Clear does
// not touch the overflow buffer: calling it with a pending, unreconciled
// PutParallel batch is an unchecked API violation, not a bug this method
// guards against.
func (c *Container) Clear() {
	for _, b := range c.blocks {
		b.co.Store(0)
	}
	if c.cfg.Radius {
		c.maxRadius = 0
	}
}

// MaxRadius reports the largest live radius across the container (0 for
// the plain variant, or immediately after construction/Clear).
func (c *Container) MaxRadius() float64 {
	return c.maxRadius
}

// RegionCount returns the live particle count of every block, in
// block-major (b = i + nx*j) order.
func (c *Container) RegionCount() []int {
	counts := make([]int, c.nxy)
	for i, b := range c.blocks {
		counts[i] = int(b.co.Load())
	}
	return counts
}

// SetWallPredicate installs the single pluggable "point inside walls"
// capability. A nil fn restores the default (always true).
func (c *Container) SetWallPredicate(fn func(x, y float64) bool) {
	if fn == nil {
		fn = func(x, y float64) bool { return true }
	}
	c.wallPredicate = fn
}

// PointInside reports whether (x,y) lies within the domain bounds and
// passes the installed wall predicate.
func (c *Container) PointInside(x, y float64) bool {
	if x < c.cfg.AX || x > c.cfg.BX || y < c.cfg.AY || y > c.cfg.BY {
		return false
	}
	return c.wallPredicate(x, y)
}

func (c *Container) reportOOB(x, y float64) {
	if c.cfg.ReportOutOfBounds {
		logx.Logf("out of bounds: (x,y)=(%g,%g)", x, y)
	}
}

func (c *Container) reportGrowth(block, nmem int) {
	if c.cfg.ReportMemoryGrowth {
		logx.Logf("particle memory in region %d scaled up to %d", block, nmem)
	}
}

// --- kernel.Store implementation -------------------------------------------

func (c *Container) NX() int { return c.nx }
func (c *Container) NY() int { return c.ny }

func (c *Container) Periodic() (xPeriodic, yPeriodic bool) {
	return c.cfg.XPeriodic, c.cfg.YPeriodic
}

func (c *Container) BoxSize() (boxx, boxy float64) { return c.boxx, c.boxy }

func (c *Container) Domain() (ax, bx, ay, by float64) {
	return c.cfg.AX, c.cfg.BX, c.cfg.AY, c.cfg.BY
}

func (c *Container) Count(block int) int {
	return int(c.blocks[block].co.Load())
}

func (c *Container) Particle(block, slot int) (x, y, r float64, id int) {
	return c.blocks[block].particleAt(slot, c.stride)
}
