package voro2d

import "sync"

// OrderingEntry records where one Put call landed a particle: the block it
// was stored in and the slot (== the block's live count immediately before
// the insertion) it occupies.
type OrderingEntry struct {
	Block, Slot int
}

// OrderingSink receives one OrderingEntry per successful PutOrdered call,
// letting a caller reconstruct insertion order later without the core
// container needing to track it itself.
type OrderingSink interface {
	Append(e OrderingEntry)
}

// putLocateBlock resolves (x,y) to a block index, growing that block by
// doubling if it is already at capacity. It reports false (without
// mutating anything) when the point falls outside a non-periodic axis.
func (c *Container) putLocateBlock(x, y float64) (block int, rx, ry float64, ok bool) {
	block, rx, ry, ok = c.putRemap(x, y)
	if !ok {
		c.reportOOB(x, y)
		return 0, 0, 0, false
	}
	b := c.blocks[block]
	if int(b.co.Load()) == b.mem {
		c.growBlock(block, b.mem<<1)
	}
	return block, rx, ry, true
}

func (c *Container) growBlock(block, nmem int) {
	if nmem > c.cfg.MaxParticleMemory {
		panic("voro2d: absolute maximum memory allocation exceeded")
	}
	c.blocks[block].grow(nmem, c.stride)
	c.reportGrowth(block, nmem)
}

// Put serially inserts one particle. r is ignored for the plain variant
// and required (as the sole variadic argument) for the radius variant.
func (c *Container) Put(id int, x, y float64, r ...float64) {
	block, rx, ry, ok := c.putLocateBlock(x, y)
	if !ok {
		return
	}
	rad := radiusArg(r)
	b := c.blocks[block]
	slot := int(b.co.Add(1)) - 1
	b.writeAt(slot, c.stride, id, rx, ry, rad)
	if c.cfg.Radius && rad > c.maxRadius {
		c.maxRadius = rad
	}
}

// PutOrdered is Put, additionally appending the (block, slot) the particle
// landed in to sink.
func (c *Container) PutOrdered(sink OrderingSink, id int, x, y float64, r ...float64) {
	block, rx, ry, ok := c.putLocateBlock(x, y)
	if !ok {
		return
	}
	rad := radiusArg(r)
	b := c.blocks[block]
	slot := int(b.co.Add(1)) - 1
	b.writeAt(slot, c.stride, id, rx, ry, rad)
	if c.cfg.Radius && rad > c.maxRadius {
		c.maxRadius = rad
	}
	sink.Append(OrderingEntry{Block: block, Slot: slot})
}

func radiusArg(r []float64) float64 {
	if len(r) == 0 {
		return 0
	}
	return r[0]
}

// PutParallelOne is the scalar step of the parallel insertion protocol:
// a pure remap, an atomic slot reservation, then either a lock-free
// fast-path write or a critical-section overflow enqueue.
// workerID must be this goroutine's stable identity in [0, nt) — it
// indexes the per-thread max-radius scratch for the radius variant. A
// point that fails to remap is silently dropped.
func (c *Container) PutParallelOne(workerID, id int, x, y float64, r ...float64) {
	block, rx, ry, ok := c.putRemap(x, y)
	if !ok {
		c.reportOOB(x, y)
		return
	}
	rad := radiusArg(r)
	b := c.blocks[block]
	m := int(b.co.Add(1)) - 1

	if m < b.mem {
		b.writeAt(m, c.stride, id, rx, ry, rad)
		if c.cfg.Radius && rad > c.maxR[workerID] {
			c.maxR[workerID] = rad
		}
		return
	}

	c.overflow.push(overflowRecord{block: block, slot: m, id: id, x: rx, y: ry, r: rad})
	if c.cfg.Radius && rad > c.maxR[workerID] {
		c.maxR[workerID] = rad
	}
}

// Point is one (id, x, y[, r]) input record for a batch PutParallel call.
type Point struct {
	ID   int
	X, Y float64
	R    float64
}

// PutParallel fans a batch of points out across numThread goroutines, each
// with a stable worker identity in [0, numThread), and blocks until every
// goroutine has finished. numThread must not exceed the thread count the
// container was last configured with via New or ChangeNumberThread.
// Callers must call PutReconcileOverflow before any read (iteration,
// nearest-particle query, or cell computation) — this method does not do
// it for them: the fork-join-then-reconcile protocol is the caller's job.
func (c *Container) PutParallel(points []Point, numThread int) {
	if numThread <= 0 {
		numThread = 1
	}
	if len(points) == 0 {
		return
	}
	if numThread > len(points) {
		numThread = len(points)
	}

	chunk := (len(points) + numThread - 1) / numThread
	var wg sync.WaitGroup
	for w := 0; w < numThread; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(workerID, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				p := points[i]
				if c.cfg.Radius {
					c.PutParallelOne(workerID, p.ID, p.X, p.Y, p.R)
				} else {
					c.PutParallelOne(workerID, p.ID, p.X, p.Y)
				}
			}
		}(w, start, end)
	}
	wg.Wait()
}

// PutReconcileOverflow drains the overflow buffer built up by PutParallel
// calls, growing blocks as needed and writing every staged record into its
// reserved slot. It must be called after every batch of PutParallel calls
// and before any read operation. Idempotent when the overflow buffer is
// already empty.
func (c *Container) PutReconcileOverflow() {
	if c.cfg.Radius {
		for i, mr := range c.maxR {
			if mr > c.maxRadius {
				c.maxRadius = mr
			}
			c.maxR[i] = 0
		}
	}

	records := c.overflow.drain()
	for _, rec := range records {
		b := c.blocks[rec.block]
		if rec.slot >= b.mem {
			nmem := b.mem << 1
			for rec.slot >= nmem {
				nmem <<= 1
			}
			c.growBlock(rec.block, nmem)
		}
		b.writeAt(rec.slot, c.stride, rec.id, rec.x, rec.y, rec.r)
	}
}
