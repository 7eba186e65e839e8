package voro2d

import "sync/atomic"

// block owns one grid cell's particle storage: parallel id/coordinate
// arrays with a live count and a capacity. co is atomic because the
// parallel insertion protocol's only cross-thread synchronization is a
// fetch-and-add on it; mem and the ids/coords slices are allocated or
// reallocated only by the single-threaded reconcile pass, the serial Put
// growth path, or construction — never concurrently with a fast-path
// write, which only stores elements at its own reserved slot.
type block struct {
	ids    []int32
	coords []float64
	co     atomic.Int64
	mem    int
}

func newBlock(initMem, stride int) *block {
	return &block{
		ids:    make([]int32, initMem),
		coords: make([]float64, initMem*stride),
		mem:    initMem,
	}
}

// grow reallocates the block to capacity nmem, copying the current
// capacity's worth of entries (which is always a superset of what is
// live, and — during out-of-order overflow replay — of what has already
// been reconciled at smaller slot indices).
func (b *block) grow(nmem, stride int) {
	ids := make([]int32, nmem)
	copy(ids, b.ids)
	coords := make([]float64, nmem*stride)
	copy(coords, b.coords)
	b.ids = ids
	b.coords = coords
	b.mem = nmem
}

// writeAt stores one particle's id and coordinates at slot in the block's
// arrays. Callers must ensure slot < b.mem.
func (b *block) writeAt(slot, stride int, id int, x, y, r float64) {
	b.ids[slot] = int32(id)
	off := slot * stride
	b.coords[off] = x
	b.coords[off+1] = y
	if stride == 3 {
		b.coords[off+2] = r
	}
}

// particleAt reads back the coordinates, radius (0 if plain), and id
// stored at slot.
func (b *block) particleAt(slot, stride int) (x, y, r float64, id int) {
	off := slot * stride
	x = b.coords[off]
	y = b.coords[off+1]
	if stride == 3 {
		r = b.coords[off+2]
	}
	id = int(b.ids[slot])
	return
}
