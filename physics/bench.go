package physics

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
	"github.com/crossworld/cube/traverse"
)

// BenchScenario describes one drop test: boxes spawned in a grid above
// the terrain, stepped until they settle.
type BenchScenario struct {
	WorldSize   float32
	Borders     traverse.BorderMaterials
	BodyCount   int
	SpawnRadius float32
	SpawnHeight float32
	BodyHalf    float32
	Steps       int
	Dt          float32
}

// DefaultBenchScenario mirrors the standard 100-box drop over a
// half-solid world.
func DefaultBenchScenario() BenchScenario {
	return BenchScenario{
		WorldSize:   1024,
		Borders:     traverse.BorderMaterials{32, 32, 0, 0},
		BodyCount:   100,
		SpawnRadius: 100,
		SpawnHeight: 50,
		BodyHalf:    0.5,
		Steps:       120,
		Dt:          1.0 / 60.0,
	}
}

// BenchResult is the outcome of one strategy's run.
type BenchResult struct {
	Metrics   ColliderMetrics
	StepTime  time.Duration
	MeanY     float32
	Settled   int
	BodyCount int
}

// RunBench drops the same scenario onto each strategy and reports the
// collected metrics side by side. Strategies are built fresh from cfg
// with only the strategy name swapped.
func RunBench(root *cube.Cube, cfg Config, scenario BenchScenario) ([]BenchResult, error) {
	strategies := []string{StrategyMonolithic, StrategyChunked, StrategyHybrid}
	results := make([]BenchResult, 0, len(strategies))
	for _, name := range strategies {
		cfg.Strategy = name
		res, err := runOne(root, cfg, scenario)
		if err != nil {
			return nil, fmt.Errorf("bench %s: %w", name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func runOne(root *cube.Cube, cfg Config, scenario BenchScenario) (BenchResult, error) {
	world := NewWorld()
	collider := NewWorldCollider(cfg)
	if err := collider.Init(root, scenario.WorldSize, scenario.Borders, world); err != nil {
		return BenchResult{}, err
	}

	ids := spawnGrid(world, scenario)

	start := time.Now()
	for s := 0; s < scenario.Steps; s++ {
		collider.Update(collectAabbs(world, ids), world)
		world.Step(scenario.Dt)
		for _, id := range ids {
			b := world.Body(id)
			if corr := collider.ResolveCollision(b.Aabb()); corr != (mgl32.Vec3{}) {
				world.ApplyCorrection(id, corr)
			}
		}
	}
	stepTime := time.Since(start)

	var sumY float32
	settled := 0
	for _, id := range ids {
		b := world.Body(id)
		sumY += b.Pos[1]
		if math32.Abs(b.Vel[1]) < 0.1 {
			settled++
		}
	}

	return BenchResult{
		Metrics:   collider.Metrics(),
		StepTime:  stepTime,
		MeanY:     sumY / float32(len(ids)),
		Settled:   settled,
		BodyCount: len(ids),
	}, nil
}

// spawnGrid distributes the bodies in a square grid above the surface.
func spawnGrid(world *World, s BenchScenario) []BodyID {
	cols := int(math32.Ceil(math32.Sqrt(float32(s.BodyCount))))
	half := mgl32.Vec3{s.BodyHalf, s.BodyHalf, s.BodyHalf}
	ids := make([]BodyID, 0, s.BodyCount)
	for i := 0; i < s.BodyCount; i++ {
		row, col := i/cols, i%cols
		x := (float32(col) - float32(cols)/2) * (s.SpawnRadius * 2 / float32(cols))
		z := (float32(row) - float32(cols)/2) * (s.SpawnRadius * 2 / float32(cols))
		ids = append(ids, world.AddBody(mgl32.Vec3{x, s.SpawnHeight, z}, half))
	}
	return ids
}

func collectAabbs(world *World, ids []BodyID) []BodyAabb {
	out := make([]BodyAabb, 0, len(ids))
	for _, id := range ids {
		out = append(out, BodyAabb{ID: id, Aabb: world.Body(id).Aabb()})
	}
	return out
}
