package kernel

import "math"

// RingSearchKernel finds the nearest particle (in the power-distance sense
// when radii are present) by scanning blocks in expanding square rings
// around the query's own block, stopping once no farther ring could
// possibly contain a better candidate. It implements the nearest-particle
// half of CellKernel; ComputeCell is not implemented (see
// ErrCellConstructionUnavailable).
type RingSearchKernel struct{}

// FindVoronoiCell implements CellKernel.
func (RingSearchKernel) FindVoronoiCell(ctx *Context, store Store, x, y float64, ci, cj, b int) (Record, float64) {
	nx, ny := store.NX(), store.NY()
	xPrd, yPrd := store.Periodic()
	boxx, boxy := store.BoxSize()
	ax, bx, ay, by := store.Domain()
	maxR := store.MaxRadius()

	best := Record{Block: -1}
	bestScore := math.Inf(1)
	bestDistSq := math.Inf(1)

	minBox := boxx
	if boxy < minBox {
		minBox = boxy
	}

	maxRing := nx + ny + 1

	for ring := 0; ring <= maxRing; ring++ {
		// Once a candidate is known, any block whose closest possible
		// point is farther than sqrt(bestScore+maxR²) cannot improve on it
		// (power distance can only "help" a farther particle by up to its
		// own radius squared). ring-1 blocks out, in world units, the
		// closest a point can be to the query is (ring-1)*minBox — the
		// query may sit anywhere inside its own block.
		if best.Block >= 0 && ring > 0 {
			minPossible := float64(ring-1) * minBox
			if minPossible > 0 && minPossible*minPossible-maxR*maxR > bestScore {
				break
			}
		}

		visitRing(ci, cj, ring, func(di, dj int) {
			wi := ci + di
			wj := cj + dj

			bwi, shiftX, ok := wrapAxis(wi, nx, xPrd)
			if !ok {
				return
			}
			bwj, shiftY, ok := wrapAxis(wj, ny, yPrd)
			if !ok {
				return
			}

			block := bwi + nx*bwj
			n := store.Count(block)
			for slot := 0; slot < n; slot++ {
				px, py, pr, _ := store.Particle(block, slot)
				dx := (px + shiftX*(bx-ax)) - x
				dy := (py + shiftY*(by-ay)) - y
				distSq := dx*dx + dy*dy
				score := distSq - pr*pr
				if score < bestScore {
					bestScore = score
					bestDistSq = distSq
					best = Record{Block: block, Slot: slot, DI: di, DJ: dj}
				}
			}
		})
	}

	_ = bestDistSq
	return best, bestScore
}

// ComputeCell is out of scope for a nearest-particle-only kernel.
func (RingSearchKernel) ComputeCell(ctx *Context, store Store, block, slot int) (Cell, error) {
	return Cell{}, ErrCellConstructionUnavailable
}

// wrapAxis maps a possibly out-of-range block coordinate into [0,n), and
// reports the number of whole domain widths (with sign) that had to be
// added to the corresponding particle coordinate to express it in the
// query's frame. ok is false when the axis is non-periodic and out of range.
func wrapAxis(w, n int, periodic bool) (wrapped int, shift float64, ok bool) {
	if w >= 0 && w < n {
		return w, 0, true
	}
	if !periodic {
		return 0, 0, false
	}
	q := floorDiv(w, n)
	return w - q*n, float64(q), true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// visitRing calls fn(di,dj) for every block offset on the square ring of
// Chebyshev radius `ring` around the origin (ring 0 is just the origin
// itself).
func visitRing(ci, cj, ring int, fn func(di, dj int)) {
	if ring == 0 {
		fn(0, 0)
		return
	}
	for di := -ring; di <= ring; di++ {
		fn(di, -ring)
		fn(di, ring)
	}
	for dj := -ring + 1; dj <= ring-1; dj++ {
		fn(-ring, dj)
		fn(ring, dj)
	}
}
