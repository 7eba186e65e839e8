package voro2d

import "sync"

// overflowRecord is one staged insertion whose reserved slot fell at or
// past its block's capacity at reservation time. voro++'s three parallel
// int arrays plus a coordinate array, manually doubled, are an artifact of
// manual memory management; a single append-only slice of structs guarded
// by one mutex is the natural Go shape and gets the same "grow by
// doubling, copy the occupied prefix" behavior for free.
type overflowRecord struct {
	block, slot, id int
	x, y, r         float64
}

// overflowBuffer is the shared, lock-guarded staging area touched only on
// the parallel insertion slow path and drained by reconciliation.
type overflowBuffer struct {
	mu      sync.Mutex
	records []overflowRecord
}

func (o *overflowBuffer) push(rec overflowRecord) {
	o.mu.Lock()
	o.records = append(o.records, rec)
	o.mu.Unlock()
}

// count reports overflowPtCt: the number of pending, not-yet-reconciled
// records. Safe to call concurrently with push, but only meaningful once
// no PutParallel batch is in flight.
func (o *overflowBuffer) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.records)
}

// drain returns the pending records and resets the buffer, retaining its
// capacity for the next batch. Must only be called from the single
// reconciliation pass — never concurrently with push.
func (o *overflowBuffer) drain() []overflowRecord {
	records := o.records
	o.records = o.records[:0]
	return records
}
