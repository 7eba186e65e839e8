package voro2d

import (
	"math/rand"
	"sync"
	"testing"
)

func testConfig() Config {
	return Config{
		AX: 0, BX: 10, AY: 0, BY: 10,
		NX: 4, NY: 4,
		InitMem:           4,
		NumberThread:      4,
		MaxParticleMemory: 1 << 16,
	}
}

// S1: single-block non-periodic capacity growth.
func TestPutGrowsBlockCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.InitMem = 2
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 10; i++ {
		c.Put(i, 0.5, 0.5)
	}

	if got := c.Count(0); got != 10 {
		t.Fatalf("block 0 count = %d, want 10", got)
	}
	for i := 0; i < 10; i++ {
		_, _, _, id := c.Particle(0, i)
		if id != i {
			t.Errorf("slot %d id = %d, want %d", i, id, i)
		}
	}
}

func TestPutDropsOutOfBoundsNonPeriodic(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(1, -1, 5)
	c.Put(2, 5, 20)
	c.Put(3, 5, 5)

	total := 0
	for _, n := range c.RegionCount() {
		total += n
	}
	if total != 1 {
		t.Fatalf("total live particles = %d, want 1", total)
	}
}

// S2: periodic wrap coordinate remapping.
func TestPutWrapsPeriodicCoordinate(t *testing.T) {
	cfg := testConfig()
	cfg.XPeriodic = true
	cfg.YPeriodic = true
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.Put(1, -1, -1)
	c.Put(2, 11, 11)

	it := c.All()
	var got []Particle
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	if len(got) != 2 {
		t.Fatalf("got %d particles, want 2", len(got))
	}
	for _, p := range got {
		if p.X < 0 || p.X >= 10 || p.Y < 0 || p.Y >= 10 {
			t.Errorf("particle %+v not remapped into primary domain", p)
		}
	}
}

// S3: parallel overflow reconciliation with block growth.
func TestPutParallelReconcilesOverflow(t *testing.T) {
	cfg := testConfig()
	cfg.InitMem = 2
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const n = 500
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{ID: i, X: 0.5, Y: 0.5}
	}

	c.PutParallel(points, cfg.NumberThread)
	c.PutReconcileOverflow()

	if got := c.Count(0); got != n {
		t.Fatalf("block 0 count after reconcile = %d, want %d", got, n)
	}

	seen := make(map[int]bool, n)
	it := c.All()
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %d after reconcile", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != n {
		t.Fatalf("saw %d distinct ids, want %d", len(seen), n)
	}
}

func TestPutReconcileOverflowIdempotent(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(1, 1, 1)
	c.PutReconcileOverflow()
	c.PutReconcileOverflow()

	if got := c.Count(0); got != 1 {
		t.Fatalf("count = %d, want 1", got)
	}
}

// S5: radius maximum folds across per-thread scratch and reconcile.
func TestPutParallelFoldsMaxRadius(t *testing.T) {
	cfg := testConfig()
	cfg.Radius = true
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	points := make([]Point, 200)
	wantMax := 0.0
	for i := range points {
		r := rng.Float64() * 2
		if r > wantMax {
			wantMax = r
		}
		points[i] = Point{ID: i, X: rng.Float64() * 10, Y: rng.Float64() * 10, R: r}
	}

	c.PutParallel(points, 4)
	c.PutReconcileOverflow()

	if c.MaxRadius() != wantMax {
		t.Fatalf("MaxRadius() = %g, want %g", c.MaxRadius(), wantMax)
	}
}

func TestClearResetsCountsAndMaxRadius(t *testing.T) {
	cfg := testConfig()
	cfg.Radius = true
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(1, 1, 1, 3.0)
	c.Clear()

	for _, n := range c.RegionCount() {
		if n != 0 {
			t.Fatalf("region count %d after Clear, want 0", n)
		}
	}
	if c.MaxRadius() != 0 {
		t.Fatalf("MaxRadius() = %g after Clear, want 0", c.MaxRadius())
	}
}

// S6: FindVoronoiCell remains safe across a thread-count change.
func TestChangeNumberThreadThenQuery(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(1, 2, 2)
	c.Put(2, 8, 8)

	c.ChangeNumberThread(2)

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			_, _, _, ok := c.FindVoronoiCell(workerID, 2.1, 2.1)
			if !ok {
				t.Errorf("worker %d: FindVoronoiCell reported not found", workerID)
			}
		}(w)
	}
	wg.Wait()
}

func TestFindVoronoiCellEmptyContainer(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, _, ok := c.FindVoronoiCell(0, 5, 5); ok {
		t.Fatal("FindVoronoiCell on empty container reported found")
	}
}

func TestFindVoronoiCellReturnsNearest(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(1, 1, 1)
	c.Put(2, 9, 9)

	_, _, pid, ok := c.FindVoronoiCell(0, 0.9, 0.9)
	if !ok {
		t.Fatal("FindVoronoiCell: not found")
	}
	if pid != 1 {
		t.Fatalf("FindVoronoiCell nearest id = %d, want 1", pid)
	}
}

func TestFindVoronoiCellPeriodicWrap(t *testing.T) {
	cfg := testConfig()
	cfg.XPeriodic = true
	cfg.YPeriodic = true
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(1, 0.1, 5)

	// A query just past the high edge should find the particle near the
	// low edge through the wrap, not "not found".
	_, _, pid, ok := c.FindVoronoiCell(0, 9.95, 5)
	if !ok {
		t.Fatal("FindVoronoiCell: not found across periodic wrap")
	}
	if pid != 1 {
		t.Fatalf("FindVoronoiCell nearest id = %d, want 1", pid)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"ax >= bx", func(c *Config) { c.BX = c.AX }},
		{"ay >= by", func(c *Config) { c.BY = c.AY }},
		{"nx <= 0", func(c *Config) { c.NX = 0 }},
		{"init_mem <= 0", func(c *Config) { c.InitMem = 0 }},
		{"number_thread <= 0", func(c *Config) { c.NumberThread = 0 }},
		{"max below init_mem", func(c *Config) { c.MaxParticleMemory = c.InitMem - 1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mod(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}

func TestGrowBlockPanicsPastMaxParticleMemory(t *testing.T) {
	cfg := testConfig()
	cfg.InitMem = 1
	cfg.MaxParticleMemory = 1
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put(1, 1, 1)

	defer func() {
		if recover() == nil {
			t.Fatal("Put past max_particle_memory did not panic")
		}
	}()
	c.Put(2, 1, 1)
}
