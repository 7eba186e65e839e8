package main

import (
	"math"
	"math/rand"

	"github.com/haldane-labs/voro2d"
)

// FitnessEvaluator builds a trial Container for a candidate (nx, ny) and
// scores it by how evenly PutParallel spread the fixed point set across
// blocks.
type FitnessEvaluator struct {
	base   voro2d.Config
	points []voro2d.Point
	nt     int
}

// NewFitnessEvaluator creates an evaluator over a fixed point set, holding
// every Config field but NX/NY constant across trials.
func NewFitnessEvaluator(base voro2d.Config, points []voro2d.Point, numThread int) *FitnessEvaluator {
	return &FitnessEvaluator{base: base, points: points, nt: numThread}
}

// Evaluate builds a trial container for the given (nx, ny), inserts the
// fixed point set, and returns the coefficient of variation (std/mean) of
// block occupancy — lower is a more even partition, and 0 for a perfectly
// uniform one.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	nx := int(x[0])
	ny := int(x[1])
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}

	cfg := fe.base
	cfg.NX = nx
	cfg.NY = ny

	c, err := voro2d.New(cfg)
	if err != nil {
		// An invalid trial (e.g. max_particle_memory below init_mem after
		// a mutation) is simply a bad candidate, not a fatal error.
		return math.Inf(1)
	}

	c.PutParallel(fe.points, fe.nt)
	c.PutReconcileOverflow()

	counts := c.RegionCount()
	mean := 0.0
	for _, n := range counts {
		mean += float64(n)
	}
	mean /= float64(len(counts))
	if mean == 0 {
		return math.Inf(1)
	}

	var sqDiff float64
	for _, n := range counts {
		d := float64(n) - mean
		sqDiff += d * d
	}
	std := math.Sqrt(sqDiff / float64(len(counts)))
	return std / mean
}

// SyntheticPoints generates n uniformly random points over the domain
// described by cfg, seeded deterministically for reproducible search runs.
func SyntheticPoints(cfg voro2d.Config, n int, seed int64) []voro2d.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]voro2d.Point, n)
	for i := range points {
		points[i] = voro2d.Point{
			ID: i,
			X:  cfg.AX + rng.Float64()*(cfg.BX-cfg.AX),
			Y:  cfg.AY + rng.Float64()*(cfg.BY-cfg.AY),
		}
	}
	return points
}
