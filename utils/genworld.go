package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/crossworld/cube/bcf"
	"github.com/crossworld/cube/cube"
)

// generateWorld builds a test world: the bottom half solid ground plus
// randomly scattered voxels above it at the given depth. percentage
// controls how much of the air volume gets filled.
func generateWorld(percentage float64, depth int, r *rand.Rand) *cube.Cube {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	root := cube.Tabulate(func(octant int) *cube.Cube {
		if cube.FromOctantIndex(octant).Y == 0 {
			return cube.Solid(32)
		}
		return cube.Solid(cube.Empty)
	})

	scale := int32(1) << depth
	// Air occupies the top half of the world.
	airCells := int(scale) * int(scale/2) * int(scale)
	want := int(float64(airCells)*(percentage/100.0) + 0.5)

	for k := 0; k < want; k++ {
		x := r.Int31n(scale)
		y := scale/2 + r.Int31n(scale/2)
		z := r.Int31n(scale)
		// random material 1..63 (0 is empty)
		m := cube.Material(1 + r.Intn(63))
		root = root.SetVoxel(x, y, z, depth, m)
	}
	return root
}

// RunGenWorld creates 'amount' .bcf files named 0.bcf..(amount-1).bcf in
// outDir, each a procedural test world with the given fill percentage of
// scattered voxels at the given depth.
func RunGenWorld(percentage float64, depth, amount int, outDir string) error {
	return RunGenWorldRange(percentage, percentage, depth, amount, outDir)
}

// RunGenWorldRange is RunGenWorld with a per-file random fill percentage
// in [minPercentage, maxPercentage].
func RunGenWorldRange(minPercentage, maxPercentage float64, depth, amount int, outDir string) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}
	if depth < 1 || depth > 12 {
		return fmt.Errorf("depth must be in [1,12], got %d", depth)
	}
	if maxPercentage < minPercentage {
		minPercentage, maxPercentage = maxPercentage, minPercentage
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < amount; i++ {
		p := minPercentage
		if maxPercentage > minPercentage {
			p = minPercentage + r.Float64()*(maxPercentage-minPercentage)
		}
		world := generateWorld(p, depth, r)
		path := filepath.Join(outDir, fmt.Sprintf("%d.bcf", i))
		if err := bcf.SaveFile(path, world, true); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
