package kernel

import (
	"math"
	"math/rand"
	"testing"
)

// fakeStore is a minimal Store built directly from a flat particle list,
// used to check RingSearchKernel against a brute-force scan without
// depending on the voro2d package.
type fakeStore struct {
	nx, ny         int
	ax, bx, ay, by float64
	xPrd, yPrd     bool
	blocks         [][]fakeParticle
	maxR           float64
}

type fakeParticle struct {
	x, y, r float64
	id      int
}

func newFakeStore(nx, ny int, ax, bx, ay, by float64, xPrd, yPrd bool) *fakeStore {
	return &fakeStore{
		nx: nx, ny: ny,
		ax: ax, bx: bx, ay: ay, by: by,
		xPrd: xPrd, yPrd: yPrd,
		blocks: make([][]fakeParticle, nx*ny),
	}
}

func (s *fakeStore) boxSize() (float64, float64) {
	return (s.bx - s.ax) / float64(s.nx), (s.by - s.ay) / float64(s.ny)
}

func (s *fakeStore) put(id int, x, y, r float64) {
	boxx, boxy := s.boxSize()
	i := int(math.Floor((x - s.ax) / boxx))
	j := int(math.Floor((y - s.ay) / boxy))
	if i < 0 || i >= s.nx || j < 0 || j >= s.ny {
		return
	}
	block := i + s.nx*j
	s.blocks[block] = append(s.blocks[block], fakeParticle{x: x, y: y, r: r, id: id})
	if r > s.maxR {
		s.maxR = r
	}
}

func (s *fakeStore) NX() int { return s.nx }
func (s *fakeStore) NY() int { return s.ny }
func (s *fakeStore) Periodic() (bool, bool) {
	return s.xPrd, s.yPrd
}
func (s *fakeStore) BoxSize() (float64, float64) { return s.boxSize() }
func (s *fakeStore) Domain() (float64, float64, float64, float64) {
	return s.ax, s.bx, s.ay, s.by
}
func (s *fakeStore) Count(block int) int { return len(s.blocks[block]) }
func (s *fakeStore) Particle(block, slot int) (x, y, r float64, id int) {
	p := s.blocks[block][slot]
	return p.x, p.y, p.r, p.id
}
func (s *fakeStore) MaxRadius() float64 { return s.maxR }

// bruteForceNearest scans every stored particle directly, applying the same
// periodic-image and power-distance rules RingSearchKernel uses, and
// returns the winning id.
func bruteForceNearest(s *fakeStore, x, y float64) (id int, ok bool) {
	best := math.Inf(1)
	found := false
	width := s.bx - s.ax
	height := s.by - s.ay

	xShifts := []float64{0}
	if s.xPrd {
		xShifts = []float64{-1, 0, 1}
	}
	yShifts := []float64{0}
	if s.yPrd {
		yShifts = []float64{-1, 0, 1}
	}

	for _, blk := range s.blocks {
		for _, p := range blk {
			for _, sx := range xShifts {
				for _, sy := range yShifts {
					px := p.x + sx*width
					py := p.y + sy*height
					dx := px - x
					dy := py - y
					score := dx*dx + dy*dy - p.r*p.r
					if score < best {
						best = score
						id = p.id
						found = true
					}
				}
			}
		}
	}
	return id, found
}

func TestRingSearchMatchesBruteForceNonPeriodic(t *testing.T) {
	s := newFakeStore(6, 6, 0, 12, 0, 12, false, false)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		s.put(i, rng.Float64()*12, rng.Float64()*12, 0)
	}

	kern := RingSearchKernel{}
	ctx := New(s.NX(), s.NY())

	for i := 0; i < 200; i++ {
		qx, qy := rng.Float64()*12, rng.Float64()*12
		ci := int(math.Floor(qx / 2))
		cj := int(math.Floor(qy / 2))
		block := ci + s.nx*cj

		rec, _ := kern.FindVoronoiCell(ctx, s, qx, qy, ci, cj, block)
		wantID, wantOK := bruteForceNearest(s, qx, qy)

		if !wantOK {
			t.Fatalf("brute force found nothing for a non-empty store")
		}
		if rec.NotFound() {
			t.Fatalf("query (%.3f,%.3f): ring search found nothing, brute force found id %d", qx, qy, wantID)
		}
		_, _, _, gotID := s.Particle(rec.Block, rec.Slot)
		if gotID != wantID {
			t.Errorf("query (%.3f,%.3f): ring search id %d, brute force id %d", qx, qy, gotID, wantID)
		}
	}
}

func TestRingSearchMatchesBruteForcePeriodic(t *testing.T) {
	s := newFakeStore(5, 5, 0, 10, 0, 10, true, true)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1500; i++ {
		s.put(i, rng.Float64()*10, rng.Float64()*10, 0)
	}

	kern := RingSearchKernel{}
	ctx := New(2*s.NX()+1, 2*s.NY()+1)

	for i := 0; i < 200; i++ {
		qx, qy := rng.Float64()*10, rng.Float64()*10
		ci := int(math.Floor(qx / 2))
		cj := int(math.Floor(qy / 2))
		block := ci + s.nx*cj

		rec, _ := kern.FindVoronoiCell(ctx, s, qx, qy, ci, cj, block)
		wantID, wantOK := bruteForceNearest(s, qx, qy)

		if !wantOK {
			t.Fatalf("brute force found nothing for a non-empty store")
		}
		if rec.NotFound() {
			t.Fatalf("query (%.3f,%.3f): ring search found nothing, brute force found id %d", qx, qy, wantID)
		}
		_, _, _, gotID := s.Particle(rec.Block, rec.Slot)
		if gotID != wantID {
			t.Errorf("query (%.3f,%.3f): ring search id %d, brute force id %d", qx, qy, gotID, wantID)
		}
	}
}

func TestRingSearchWithRadiusPrefersLargerParticle(t *testing.T) {
	s := newFakeStore(4, 4, 0, 8, 0, 8, false, false)
	s.put(1, 4, 4, 0)
	s.put(2, 4.5, 4, 3.0)

	kern := RingSearchKernel{}
	ctx := New(s.NX(), s.NY())

	ci, cj := 2, 2
	rec, _ := kern.FindVoronoiCell(ctx, s, 4.2, 4, ci, cj, ci+s.nx*cj)
	if rec.NotFound() {
		t.Fatal("FindVoronoiCell: not found")
	}
	_, _, _, id := s.Particle(rec.Block, rec.Slot)
	if id != 2 {
		t.Fatalf("id = %d, want 2 (larger radius should win power distance)", id)
	}
}
