package cube

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOctantOf(t *testing.T) {
	up := mgl32.Vec3{1, 1, 1}
	if got := OctantOf(mgl32.Vec3{-0.5, -0.5, -0.5}, up); got != (IVec3{}) {
		t.Fatalf("negative corner: got %v", got)
	}
	if got := OctantOf(mgl32.Vec3{0.5, -0.5, 0.5}, up); got != (IVec3{1, 0, 1}) {
		t.Fatalf("mixed point: got %v", got)
	}
	// A point on the mid-plane resolves along the direction sign.
	if got := OctantOf(mgl32.Vec3{0, 0, 0}, up); got != (IVec3{1, 1, 1}) {
		t.Fatalf("origin going positive: got %v", got)
	}
	if got := OctantOf(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{-1, -1, -1}); got != (IVec3{}) {
		t.Fatalf("origin going negative: got %v", got)
	}
}

func TestChildLocalRoundTrip(t *testing.T) {
	points := []mgl32.Vec3{
		{-0.25, 0.5, 0.75},
		{0, 0, 0},
		{-1, 1, -1},
	}
	for _, p := range points {
		for octant := 0; octant < 8; octant++ {
			o := FromOctantIndex(octant)
			if got := ParentLocal(ChildLocal(p, o), o); got != p {
				t.Fatalf("octant %d: %v round-tripped to %v", octant, p, got)
			}
		}
	}
	// The octant's own center maps to the child-space origin.
	if got := ChildLocal(mgl32.Vec3{0.5, 0.5, 0.5}, IVec3{1, 1, 1}); got != (mgl32.Vec3{}) {
		t.Fatalf("octant center: got %v", got)
	}
	if got := ChildLocal(mgl32.Vec3{-0.5, -0.5, -0.5}, IVec3{}); got != (mgl32.Vec3{}) {
		t.Fatalf("origin octant center: got %v", got)
	}
}
