package utils

import (
	"fmt"

	"github.com/crossworld/cube/bcf"
	"github.com/crossworld/cube/cube"
	"github.com/crossworld/cube/physics"
)

// RunBench drops the standard box scenario onto every collision strategy
// and prints the metrics side by side. worldPath may be empty, in which
// case a procedural half-solid world is used. cfgPath may be empty for
// defaults.
func RunBench(worldPath, cfgPath string) error {
	cfg, err := physics.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	var world *cube.Cube
	if worldPath != "" {
		world, err = bcf.LoadFile(worldPath)
		if err != nil {
			return err
		}
	} else {
		world = cube.Tabulate(func(octant int) *cube.Cube {
			if cube.FromOctantIndex(octant).Y == 0 {
				return cube.Solid(32)
			}
			return cube.Solid(cube.Empty)
		})
	}

	scenario := physics.DefaultBenchScenario()
	scenario.Borders = cfg.Borders()

	results, err := physics.RunBench(world, cfg, scenario)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %12s %12s %10s %10s %12s %10s\n",
		"strategy", "init", "step total", "colliders", "faces", "mean rest y", "settled")
	for _, r := range results {
		fmt.Printf("%-12s %12v %12v %10d %10d %12.2f %7d/%d\n",
			r.Metrics.Strategy,
			r.Metrics.InitTime,
			r.StepTime,
			r.Metrics.ActiveColliders,
			r.Metrics.TotalFaces,
			r.MeanY,
			r.Settled, r.BodyCount,
		)
	}
	return nil
}
