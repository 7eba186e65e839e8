// Package kernel defines the "cell collaborator" contract that voro2d's
// container delegates to for nearest-particle lookup and (eventually) full
// Voronoi cell construction. The container owns the contract's lifecycle
// (one Context per worker thread, rebuilt when the thread count changes);
// this package owns the contract's shape and one concrete implementation,
// RingSearchKernel, that answers the nearest-particle half of it.
//
// Full polygon cell construction (the equivalent of voro++'s
// voro_compute_2d::compute_cell) is intentionally not implemented here:
// callers see it only through this package's Cell/CellKernel contract.
package kernel

import "errors"

// ErrCellConstructionUnavailable is returned by ComputeCell implementations
// that only support nearest-particle lookup.
var ErrCellConstructionUnavailable = errors.New("kernel: cell construction not implemented")

// Record identifies the particle a nearest-particle search converged on.
// Block == -1 signals that no particle was found. DI, DJ are the block
// offsets, in units of whole blocks relative to the query's own block, that
// had to be added to reach Block — the caller is responsible for turning a
// wrapped DI/DJ into a periodic-image count (see voro2d.Container.FindVoronoiCell).
type Record struct {
	Block, Slot int
	DI, DJ      int
}

// NotFound reports whether the record represents "no particle found".
func (r Record) NotFound() bool { return r.Block < 0 }

// Cell is the (currently unpopulated) output of full cell construction.
type Cell struct {
	Area     float64
	Vertices [][2]float64
}

// Store is the read-only view of the block-partitioned particle grid that a
// CellKernel needs to search it. voro2d.Container implements Store; the
// kernel package never depends on voro2d directly, keeping the collaborator
// boundary a real Go interface rather than a back-reference to a concrete
// type.
type Store interface {
	// NX, NY report the block grid dimensions.
	NX() int
	NY() int
	// Periodic reports which axes wrap.
	Periodic() (xPeriodic, yPeriodic bool)
	// BoxSize reports the world-space size of one block.
	BoxSize() (boxx, boxy float64)
	// Domain reports the primary-domain extents.
	Domain() (ax, bx, ay, by float64)
	// Count reports the number of live particles in a block.
	Count(block int) int
	// Particle reports the primary-domain coordinates, radius (0 for the
	// plain variant), and external ID of the particle at (block, slot).
	Particle(block, slot int) (x, y, r float64, id int)
	// MaxRadius reports the largest live radius across the whole store (0
	// for the plain variant). Used to bound power-distance search.
	MaxRadius() float64
}

// CellKernel is the collaborator the container invokes once per query on
// the calling worker's own Context.
type CellKernel interface {
	// FindVoronoiCell searches for the particle whose (possibly radical)
	// Voronoi cell contains (x,y), a point already remapped into block
	// (ci,cj) / linear index b. It returns the winning record and the
	// minimum radical distance squared found, mirroring voro++'s mrs
	// out-parameter (useful to callers building on top of the search, e.g.
	// wall-distance pruning; unused by the container itself).
	FindVoronoiCell(ctx *Context, store Store, x, y float64, ci, cj, b int) (Record, float64)

	// ComputeCell builds the full Voronoi cell for the particle at
	// (block, slot). Out of scope for RingSearchKernel.
	ComputeCell(ctx *Context, store Store, block, slot int) (Cell, error)
}
