package voro2d

import "github.com/haldane-labs/voro2d/kernel"

// Particle is one stored particle as seen through iteration: its external
// ID, primary-domain coordinates, radius (0 for the plain variant), and
// the (block, slot) it currently occupies.
type Particle struct {
	ID      int
	X, Y, R float64
	Block   int
	Slot    int
}

// Iterator walks (block, slot) pairs in lexicographic order without
// materializing the full particle list. It borrows the container
// read-only; any mutating call (Put, PutParallel, PutReconcileOverflow,
// Clear, ChangeNumberThread) invalidates outstanding iterators.
type Iterator struct {
	c     *Container
	block int
	slot  int
}

// All returns a fresh Iterator positioned before the first particle.
func (c *Container) All() *Iterator {
	return &Iterator{c: c}
}

// Next advances the iterator and reports the next particle, or false once
// every block has been exhausted.
func (it *Iterator) Next() (Particle, bool) {
	for it.block < len(it.c.blocks) {
		b := it.c.blocks[it.block]
		n := int(b.co.Load())
		if it.slot < n {
			x, y, r, id := b.particleAt(it.slot, it.c.stride)
			p := Particle{ID: id, X: x, Y: y, R: r, Block: it.block, Slot: it.slot}
			it.slot++
			return p, true
		}
		it.block++
		it.slot = 0
	}
	return Particle{}, false
}

// ComputeAllCells walks every stored particle in block-major order,
// building its Voronoi cell via k and invoking fn with the particle and
// its cell. It stops and returns the first error from either k or fn.
// workerID selects the compute context used, exactly as for
// FindVoronoiCell.
func (c *Container) ComputeAllCells(workerID int, k kernel.CellKernel, fn func(Particle, kernel.Cell) error) error {
	ctx := c.contexts[workerID]
	it := c.All()
	for {
		p, ok := it.Next()
		if !ok {
			return nil
		}
		cell, err := k.ComputeCell(ctx, c, p.Block, p.Slot)
		if err != nil {
			return err
		}
		if err := fn(p, cell); err != nil {
			return err
		}
	}
}

// SumCellAreas totals the Area of every stored particle's Voronoi cell, as
// built by k. With the shipped kernel.RingSearchKernel — which does not
// implement cell construction — this returns
// kernel.ErrCellConstructionUnavailable on the first particle; a caller
// wanting real areas must inject its own CellKernel.
func (c *Container) SumCellAreas(workerID int, k kernel.CellKernel) (float64, error) {
	var total float64
	err := c.ComputeAllCells(workerID, k, func(_ Particle, cell kernel.Cell) error {
		total += cell.Area
		return nil
	})
	return total, err
}
