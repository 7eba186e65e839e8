package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Collectable is the read-only view of a Container a Collector needs to
// build a Snapshot. voro2d.Container satisfies it directly.
type Collectable interface {
	RegionCount() []int
	MaxRadius() float64
}

// Collector builds occupancy Snapshots from a container's live state,
// tracking how many overflow-reconciliation passes have run so far.
type Collector struct {
	drains int
}

// Snapshot builds a Snapshot of c's current block occupancy at the given
// tick.
func (col *Collector) Snapshot(tick int32, c Collectable) Snapshot {
	counts := c.RegionCount()

	total := 0
	for _, n := range counts {
		total += n
	}

	min, max, mean, std, p10, p50, p90 := OccupancyStats(counts)
	return Snapshot{
		Tick:           tick,
		TotalParticles: total,
		BlockCount:     len(counts),
		MinOccupancy:   min,
		MaxOccupancy:   max,
		MeanOccupancy:  mean,
		StdOccupancy:   std,
		P10Occupancy:   p10,
		P50Occupancy:   p50,
		P90Occupancy:   p90,
		MaxRadius:      c.MaxRadius(),
		OverflowDrains: col.drains,
	}
}

// NoteReconcile records that PutReconcileOverflow ran once, so the next
// Snapshot reports an accurate cumulative drain count.
func (col *Collector) NoteReconcile() {
	col.drains++
}

// OutputManager writes an occupancy-snapshot CSV for one run, matching
// this codebase's header-once-then-headerless CSV writing convention.
type OutputManager struct {
	dir           string
	snapshotFile  *os.File
	headerWritten bool
}

// NewOutputManager creates an output manager rooted at dir, creating the
// directory if needed. Returns nil, nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	snapshotPath := filepath.Join(dir, "snapshots.csv")
	f, err := os.Create(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("creating snapshots.csv: %w", err)
	}
	om.snapshotFile = f

	return om, nil
}

// WriteSnapshot writes one occupancy Snapshot to snapshots.csv.
func (om *OutputManager) WriteSnapshot(s Snapshot) error {
	if om == nil {
		return nil
	}

	records := []Snapshot{s}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.snapshotFile); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		om.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.snapshotFile); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output file.
func (om *OutputManager) Close() error {
	if om == nil || om.snapshotFile == nil {
		return nil
	}
	return om.snapshotFile.Close()
}
