package main

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/haldane-labs/voro2d"
)

// particleWorld owns the ECS state for the moving particles voroviz feeds
// into a Container every frame.
type particleWorld struct {
	world  *ecs.World
	mapper *ecs.Map3[Position, Velocity, Tag]
	filter *ecs.Filter3[Position, Velocity, Tag]

	entities []ecs.Entity
}

// newParticleWorld seeds n particles inside the domain, biased toward the
// high-density lobes of an opensimplex field so occupancy is visibly uneven
// across blocks — the interesting case for a partition visualizer.
func newParticleWorld(cfg voro2d.Config, n int, seed int64) *particleWorld {
	world := ecs.NewWorld()
	pw := &particleWorld{
		world:  world,
		mapper: ecs.NewMap3[Position, Velocity, Tag](world),
		filter: ecs.NewFilter3[Position, Velocity, Tag](world),
	}

	noise := opensimplex.NewNormalized(seed)
	rng := rand.New(rand.NewSource(seed))

	width := cfg.BX - cfg.AX
	height := cfg.BY - cfg.AY
	scale := 3.0 / max64(width, height)

	pw.entities = make([]ecs.Entity, 0, n)
	for len(pw.entities) < n {
		x := cfg.AX + rng.Float64()*width
		y := cfg.AY + rng.Float64()*height
		density := noise.Eval2(x*scale, y*scale)
		if rng.Float64() > density {
			continue
		}

		pos := Position{X: float32(x), Y: float32(y)}
		vel := Velocity{
			X: float32((rng.Float64() - 0.5) * 0.02 * width),
			Y: float32((rng.Float64() - 0.5) * 0.02 * height),
		}
		tag := Tag{ID: len(pw.entities)}
		if cfg.Radius {
			tag.Radius = float32(0.002 * width * (0.5 + rng.Float64()))
		}

		e := pw.mapper.NewEntity(&pos, &vel, &tag)
		pw.entities = append(pw.entities, e)
	}

	return pw
}

// Step advances every particle by its velocity, wrapping or reflecting at
// the domain edges depending on periodicity. The wrap mirrors what the
// container itself does to periodic coordinates on PutParallel; on a
// non-periodic axis only the velocity is flipped, so a particle that has
// stepped outside the domain stays there for that frame and the container
// drops it.
func (pw *particleWorld) Step(cfg voro2d.Config) {
	posMap := ecs.NewMap[Position](pw.world)
	velMap := ecs.NewMap[Velocity](pw.world)

	query := pw.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos := posMap.Get(e)
		vel := velMap.Get(e)

		pos.X += vel.X
		pos.Y += vel.Y

		if cfg.XPeriodic {
			width := float32(cfg.BX - cfg.AX)
			if pos.X < float32(cfg.AX) {
				pos.X += width
			} else if pos.X >= float32(cfg.BX) {
				pos.X -= width
			}
		} else if pos.X < float32(cfg.AX) || pos.X >= float32(cfg.BX) {
			vel.X = -vel.X
		}

		if cfg.YPeriodic {
			height := float32(cfg.BY - cfg.AY)
			if pos.Y < float32(cfg.AY) {
				pos.Y += height
			} else if pos.Y >= float32(cfg.BY) {
				pos.Y -= height
			}
		} else if pos.Y < float32(cfg.AY) || pos.Y >= float32(cfg.BY) {
			vel.Y = -vel.Y
		}
	}
}

// Points collects the current frame's particle positions as a batch ready
// for Container.PutParallel.
func (pw *particleWorld) Points(radius bool) []voro2d.Point {
	posMap := ecs.NewMap[Position](pw.world)
	tagMap := ecs.NewMap[Tag](pw.world)

	points := make([]voro2d.Point, 0, len(pw.entities))
	query := pw.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos := posMap.Get(e)
		tag := tagMap.Get(e)

		p := voro2d.Point{ID: tag.ID, X: float64(pos.X), Y: float64(pos.Y)}
		if radius {
			p.R = float64(tag.Radius)
		}
		points = append(points, p)
	}
	return points
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
