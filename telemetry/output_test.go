package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haldane-labs/voro2d"
)

// S8: a Snapshot taken after PutReconcileOverflow reports the same total
// live particle count as the container's own RegionCount.
func TestSnapshotMatchesContainerRegionCount(t *testing.T) {
	cfg := voro2d.Config{
		AX: 0, BX: 10, AY: 0, BY: 10,
		NX: 4, NY: 4,
		InitMem:           4,
		NumberThread:      4,
		MaxParticleMemory: 1 << 16,
	}
	c, err := voro2d.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	points := make([]voro2d.Point, 300)
	for i := range points {
		points[i] = voro2d.Point{ID: i, X: float64(i%10) + 0.5, Y: float64(i%7) + 0.5}
	}
	c.PutParallel(points, 4)
	c.PutReconcileOverflow()

	var col Collector
	col.NoteReconcile()
	snap := col.Snapshot(1, c)

	wantTotal := 0
	for _, n := range c.RegionCount() {
		wantTotal += n
	}

	if snap.TotalParticles != wantTotal {
		t.Fatalf("Snapshot.TotalParticles = %d, want %d", snap.TotalParticles, wantTotal)
	}
	if snap.TotalParticles != len(points) {
		t.Fatalf("Snapshot.TotalParticles = %d, want %d (all points accepted)", snap.TotalParticles, len(points))
	}
	if snap.BlockCount != cfg.NX*cfg.NY {
		t.Fatalf("Snapshot.BlockCount = %d, want %d", snap.BlockCount, cfg.NX*cfg.NY)
	}
	if snap.OverflowDrains != 1 {
		t.Fatalf("Snapshot.OverflowDrains = %d, want 1", snap.OverflowDrains)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteSnapshot(Snapshot{Tick: 0, TotalParticles: 5}); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if err := om.WriteSnapshot(Snapshot{Tick: 1, TotalParticles: 7}); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "snapshots.csv"))
	if err != nil {
		t.Fatalf("reading snapshots.csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("snapshots.csv has %d lines, want 3 (header + 2 rows)", len(lines))
	}
}

func TestNewOutputManagerDisabledWithEmptyDir(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\"): %v", err)
	}
	if om != nil {
		t.Fatal("NewOutputManager(\"\") returned a non-nil manager")
	}
	if err := om.WriteSnapshot(Snapshot{}); err != nil {
		t.Fatalf("WriteSnapshot on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close on nil manager: %v", err)
	}
}
