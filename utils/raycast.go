package utils

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/bcf"
	"github.com/crossworld/cube/raycast"
)

// RunRaycast loads a .bcf file and casts one ray through it, printing
// the hit voxel or a miss. Origin and direction are in the octree's
// [0,1]³ local space.
func RunRaycast(path string, origin, dir mgl32.Vec3) error {
	tree, err := bcf.LoadFile(path)
	if err != nil {
		return err
	}
	data := bcf.Serialize(tree)

	hit, err := raycast.CastBCF(data, origin, dir, raycast.Options{})
	switch {
	case errors.Is(err, raycast.ErrIterationLimit), errors.Is(err, raycast.ErrStackOverflow):
		return fmt.Errorf("ray exhausted traversal budget: %w", err)
	case err != nil:
		return err
	case hit == nil:
		fmt.Println("miss")
		return nil
	}

	fmt.Printf("hit material %d\n", hit.Value)
	fmt.Printf("  position: (%g, %g, %g)\n", hit.Position[0], hit.Position[1], hit.Position[2])
	fmt.Printf("  normal:   %s\n", hit.Normal)
	fmt.Printf("  voxel:    (%d, %d, %d) at depth %d\n", hit.Coord.Pos.X, hit.Coord.Pos.Y, hit.Coord.Pos.Z, hit.Coord.Depth)
	return nil
}
