package voro2d

import "fmt"

// Config holds the construction parameters for a Container: domain
// extents, block counts, periodicity, initial per-block capacity, worker
// count, the radius/plain variant switch, the hard memory ceiling, and
// the two opt-in diagnostic verbosity flags.
type Config struct {
	AX, BX, AY, BY float64
	NX, NY         int
	XPeriodic      bool
	YPeriodic      bool

	// InitMem is the initial per-block particle capacity.
	InitMem int
	// NumberThread is the initial worker-pool size for PutParallel and the
	// number of per-thread compute contexts to build.
	NumberThread int
	// Radius selects the radius-carrying (power-diagram) variant when true
	// (stride 3) versus the plain variant (stride 2).
	Radius bool
	// MaxParticleMemory bounds per-block capacity; exceeding it during
	// growth is fatal.
	MaxParticleMemory int

	// ReportOutOfBounds logs a diagnostic line for every non-periodic point
	// dropped for falling outside the domain.
	ReportOutOfBounds bool
	// ReportMemoryGrowth logs a diagnostic line whenever a block grows.
	// Growth of the overflow buffer is not reported.
	ReportMemoryGrowth bool
}

// DefaultMaxParticleMemory matches voro++'s compile-time ceiling.
const DefaultMaxParticleMemory = 1 << 24

// Validate checks the structural invariants a Config must satisfy before a
// Container can be built from it.
func (c Config) Validate() error {
	if !(c.AX < c.BX) {
		return fmt.Errorf("voro2d: invalid domain: ax=%g must be < bx=%g", c.AX, c.BX)
	}
	if !(c.AY < c.BY) {
		return fmt.Errorf("voro2d: invalid domain: ay=%g must be < by=%g", c.AY, c.BY)
	}
	if c.NX <= 0 || c.NY <= 0 {
		return fmt.Errorf("voro2d: nx and ny must be positive, got (%d,%d)", c.NX, c.NY)
	}
	if c.InitMem <= 0 {
		return fmt.Errorf("voro2d: init_mem must be positive, got %d", c.InitMem)
	}
	if c.NumberThread <= 0 {
		return fmt.Errorf("voro2d: number_thread must be positive, got %d", c.NumberThread)
	}
	if c.MaxParticleMemory <= 0 {
		return fmt.Errorf("voro2d: max_particle_memory must be positive, got %d", c.MaxParticleMemory)
	}
	if c.MaxParticleMemory < c.InitMem {
		return fmt.Errorf("voro2d: max_particle_memory (%d) below init_mem (%d)", c.MaxParticleMemory, c.InitMem)
	}
	return nil
}

// stride returns the number of doubles stored per particle: 2 for the
// plain variant, 3 for the radius-carrying variant.
func (c Config) stride() int {
	if c.Radius {
		return 3
	}
	return 2
}
