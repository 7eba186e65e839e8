package voro2d

// FindVoronoiCell finds the particle whose Voronoi cell contains (x,y) —
// equivalently, the nearest particle to (x,y) under the power-distance
// metric when radii are present. workerID selects which per-thread compute
// context performs the search; it plays the role of voro++'s t_num()
// and must lie in [0, nt). The search itself is safe to call concurrently
// from distinct workerIDs, but never concurrently with ChangeNumberThread
// or an insertion batch.
//
// If the container holds no particles, ok is false.
func (c *Container) FindVoronoiCell(workerID int, x, y float64) (rx, ry float64, pid int, ok bool) {
	ai, aj, ci, cj, rxp, ryp, block, remapped := c.remap(x, y)
	if !remapped {
		return 0, 0, 0, false
	}

	ctx := c.contexts[workerID]
	rec, _ := c.kernel.FindVoronoiCell(ctx, c, rxp, ryp, ci, cj, block)
	if rec.NotFound() {
		return 0, 0, 0, false
	}

	// Reassemble the world-space position, folding in any periodic
	// boundary crossed while the search walked away from (ci,cj).
	if c.cfg.XPeriodic {
		ci += rec.DI
		if ci < 0 || ci >= c.nx {
			ai += stepDiv(ci, c.nx)
		}
	}
	if c.cfg.YPeriodic {
		cj += rec.DJ
		if cj < 0 || cj >= c.ny {
			aj += stepDiv(cj, c.ny)
		}
	}

	px, py, _, id := c.blocks[rec.Block].particleAt(rec.Slot, c.stride)
	rx = px + float64(ai)*(c.cfg.BX-c.cfg.AX)
	ry = py + float64(aj)*(c.cfg.BY-c.cfg.AY)
	return rx, ry, id, true
}
