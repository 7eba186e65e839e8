package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Snapshot holds aggregated block-occupancy statistics for one container at
// one point in time: how evenly PutParallel spread particles across blocks,
// and the current radius ceiling for the radius variant.
type Snapshot struct {
	Tick int32 `csv:"tick"`

	TotalParticles int     `csv:"total_particles"`
	BlockCount     int     `csv:"block_count"`
	MinOccupancy   int     `csv:"min_occupancy"`
	MaxOccupancy   int     `csv:"max_occupancy"`
	MeanOccupancy  float64 `csv:"mean_occupancy"`
	StdOccupancy   float64 `csv:"std_occupancy"`
	P10Occupancy   float64 `csv:"p10_occupancy"`
	P50Occupancy   float64 `csv:"p50_occupancy"`
	P90Occupancy   float64 `csv:"p90_occupancy"`

	MaxRadius      float64 `csv:"max_radius"`
	OverflowDrains int     `csv:"overflow_drains"`
}

// Percentile calculates the p-th percentile of an already-sorted slice
// (p in [0,1]) by linear interpolation. Returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// OccupancyStats builds a Snapshot's occupancy fields from a container's
// per-block live counts (as returned by Container.RegionCount).
func OccupancyStats(counts []int) (min, max int, mean, std, p10, p50, p90 float64) {
	n := len(counts)
	if n == 0 {
		return 0, 0, 0, 0, 0, 0, 0
	}

	values := make([]float64, n)
	min, max = counts[0], counts[0]
	for i, c := range counts {
		values[i] = float64(c)
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}

	mean = stat.Mean(values, nil)
	std = stat.StdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return min, max, mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging of a snapshot.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(s.Tick)),
		slog.Int("total_particles", s.TotalParticles),
		slog.Int("block_count", s.BlockCount),
		slog.Int("min_occupancy", s.MinOccupancy),
		slog.Int("max_occupancy", s.MaxOccupancy),
		slog.Float64("mean_occupancy", s.MeanOccupancy),
		slog.Float64("std_occupancy", s.StdOccupancy),
		slog.Float64("p10_occupancy", s.P10Occupancy),
		slog.Float64("p50_occupancy", s.P50Occupancy),
		slog.Float64("p90_occupancy", s.P90Occupancy),
		slog.Float64("max_radius", s.MaxRadius),
		slog.Int("overflow_drains", s.OverflowDrains),
	)
}

// LogSnapshot logs the snapshot using slog.
func (s Snapshot) LogSnapshot() {
	slog.Info("occupancy", "snapshot", s)
}
