package traverse

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
)

func TestGridIndexRoundTrip(t *testing.T) {
	if gridIndex(0, 0, 0) != 0 || gridIndex(3, 3, 3) != 63 || gridIndex(1, 1, 1) != centerIndex {
		t.Fatal("grid index corners are wrong")
	}
	for i := 0; i < gridCells; i++ {
		x, y, z := gridPos(i)
		if gridIndex(x, y, z) != i {
			t.Fatalf("index %d does not round trip through (%d,%d,%d)", i, x, y, z)
		}
	}
}

func TestNeighborGridBorders(t *testing.T) {
	grid := NewNeighborGrid(cube.Solid(42), BorderMaterials{33, 33, 0, 0})

	// Center cells replicate the solid root.
	for octant := 0; octant < 8; octant++ {
		p := cube.FromOctantIndex(octant)
		v := grid.Voxel(gridIndex(int(p.X)+1, int(p.Y)+1, int(p.Z)+1))
		if v.Value() != 42 {
			t.Fatalf("octant %d: got %d, want 42", octant, v.Value())
		}
	}

	// Shell cells take the border material of their Y layer.
	if grid.Voxel(gridIndex(0, 0, 0)).Value() != 33 {
		t.Fatal("bottom shell should be ground")
	}
	if grid.Voxel(gridIndex(0, 3, 0)).Value() != 0 {
		t.Fatal("top shell should be air")
	}
}

func TestNeighborViewOffsets(t *testing.T) {
	root := cube.Tabulate(func(i int) *cube.Cube { return cube.Solid(cube.Material(i)) })
	grid := NewNeighborGrid(root, BorderMaterials{})

	// View on octant 0 at grid (1,1,1). With index = x + y*2 + z*4 the
	// +x neighbor is octant 1, +y octant 2, +z octant 4.
	view := grid.View(gridIndex(1, 1, 1))
	if view.Center().Value() != 0 {
		t.Fatalf("center: got %d", view.Center().Value())
	}
	cases := []struct {
		offset int
		want   cube.Material
	}{
		{OffsetRight, 1},
		{OffsetUp, 2},
		{OffsetFront, 4},
	}
	for _, tc := range cases {
		n, ok := view.Neighbor(tc.offset)
		if !ok || n.Value() != tc.want {
			t.Fatalf("offset %d: got %v %v, want %d", tc.offset, n, ok, tc.want)
		}
	}
	// Shell neighbors are still in the grid.
	if _, ok := view.Neighbor(OffsetLeft); !ok {
		t.Fatal("left shell neighbor should exist")
	}
}

func TestChildGridDescends(t *testing.T) {
	// Octant 0 subdivided with numbered children; its +x neighbor solid.
	inner := cube.Tabulate(func(i int) *cube.Cube { return cube.Solid(cube.Material(10 + i)) })
	root := cube.Tabulate(func(i int) *cube.Cube {
		if i == 0 {
			return inner
		}
		return cube.Solid(7)
	})
	grid := NewNeighborGrid(root, BorderMaterials{})
	view := grid.View(gridIndex(1, 1, 1)) // octant 0

	child := view.ChildGrid()

	// The center 2×2×2 of the child grid is inner's octants.
	for octant := 0; octant < 8; octant++ {
		p := cube.FromOctantIndex(octant)
		v := child.Voxel(gridIndex(int(p.X)+1, int(p.Y)+1, int(p.Z)+1))
		if v.Value() != cube.Material(10+octant) {
			t.Fatalf("child octant %d: got %d, want %d", octant, v.Value(), 10+octant)
		}
	}

	// Past the +x edge of the center block lies the sibling octant 1,
	// replicated from its solid value.
	edge := child.Voxel(gridIndex(3, 1, 1))
	if edge.Value() != 7 {
		t.Fatalf("sibling shell: got %d, want 7", edge.Value())
	}
}

func TestVisitFacesSingleDeepVoxel(t *testing.T) {
	// One solid voxel in an otherwise empty world: exactly its six faces.
	root := cube.Solid(0).SetVoxel(4, 4, 4, 3, 7)

	var faces []FaceInfo
	VisitFaces(root, BorderMaterials{}, 8, func(f FaceInfo) { faces = append(faces, f) })

	if len(faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(faces))
	}
	seen := map[cube.Axis]bool{}
	for _, f := range faces {
		seen[f.Normal] = true
		if f.Material != 7 {
			t.Fatalf("material: got %d, want 7", f.Material)
		}
		if f.Size != 0.125 {
			t.Fatalf("size: got %v, want 0.125", f.Size)
		}
		want := mgl32.Vec3{0.5, 0.5, 0.5}
		if f.Position != want {
			t.Fatalf("position: got %v, want %v", f.Position, want)
		}
	}
	if len(seen) != 6 {
		t.Fatalf("normals not distinct: %v", seen)
	}
}

func TestVisitFacesSolidBorderSuppression(t *testing.T) {
	// A solid root against a solid ground shell exposes no bottom faces.
	root := cube.Solid(5)

	var bottom, top int
	VisitFaces(root, BorderMaterials{5, 5, 5, 5}, 2, func(f FaceInfo) {
		switch f.Normal {
		case cube.NegY:
			bottom++
		case cube.PosY:
			top++
		}
	})
	if bottom != 0 || top != 0 {
		t.Fatalf("solid shell must suppress all faces, got bottom=%d top=%d", bottom, top)
	}

	var exposed int
	VisitFaces(root, BorderMaterials{}, 2, func(f FaceInfo) { exposed++ })
	if exposed == 0 {
		t.Fatal("empty shell must expose the hull")
	}
}

func TestRegionFromLocalAABB(t *testing.T) {
	r, ok := RegionFromLocalAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.4, 0.4, 0.4}, 1)
	if !ok {
		t.Fatal("corner box should intersect")
	}
	if r.OctantCount() != 1 {
		t.Fatalf("octant count: got %d, want 1", r.OctantCount())
	}

	r, ok = RegionFromLocalAABB(mgl32.Vec3{0.25, 0.25, 0.25}, mgl32.Vec3{0.75, 0.75, 0.75}, 1)
	if !ok || r.OctantCount() != 8 {
		t.Fatalf("spanning box: got %+v, want all 8 octants", r)
	}

	if _, ok := RegionFromLocalAABB(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{3, 3, 3}, 1); ok {
		t.Fatal("box outside the unit cube must not intersect")
	}
}

func TestRegionContains(t *testing.T) {
	r, _ := RegionFromLocalAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.4, 0.4, 0.4}, 1)

	if !r.Contains(cube.CubeCoord{Pos: cube.IVec3{}, Depth: 1}) {
		t.Fatal("origin octant should be contained")
	}
	if r.Contains(cube.CubeCoord{Pos: cube.IVec3{X: 1, Y: 1, Z: 1}, Depth: 1}) {
		t.Fatal("far octant should not be contained")
	}
	// A deeper voxel inside the origin octant.
	if !r.Contains(cube.CubeCoord{Pos: cube.IVec3{X: 1, Y: 0, Z: 1}, Depth: 2}) {
		t.Fatal("deep voxel in the origin octant should be contained")
	}
	if r.Contains(cube.CubeCoord{Pos: cube.IVec3{X: 2, Y: 0, Z: 0}, Depth: 2}) {
		t.Fatal("deep voxel outside the region should not be contained")
	}
}

func TestRegionMightContainDescendants(t *testing.T) {
	// Region is a single depth-3 cell at (5,5,5).
	r := RegionBounds{Pos: cube.IVec3{X: 5, Y: 5, Z: 5}, Depth: 3, Size: cube.IVec3{X: 1, Y: 1, Z: 1}}

	// Ancestors of that cell might contain it.
	if !r.MightContainDescendants(cube.CubeCoord{Pos: cube.IVec3{X: 1, Y: 1, Z: 1}, Depth: 1}) {
		t.Fatal("ancestor octant must pass")
	}
	if !r.MightContainDescendants(cube.CubeCoord{Pos: cube.IVec3{X: 2, Y: 2, Z: 2}, Depth: 2}) {
		t.Fatal("ancestor cell must pass")
	}
	// Disjoint subtrees cannot.
	if r.MightContainDescendants(cube.CubeCoord{Pos: cube.IVec3{}, Depth: 1}) {
		t.Fatal("origin octant cannot contain cell (5,5,5)")
	}
}

func TestVisitFacesInRegionPrunes(t *testing.T) {
	// Solid voxel at (2,2,2) depth 3 and another far away. A region
	// around the first must see only its six faces.
	root := cube.Solid(0).
		SetVoxel(2, 2, 2, 3, 5).
		SetVoxel(7, 7, 0, 3, 9)

	region, ok := RegionFromLocalAABB(
		mgl32.Vec3{2.0 / 8, 2.0 / 8, 2.0 / 8},
		mgl32.Vec3{3.0 / 8, 3.0 / 8, 3.0 / 8},
		3,
	)
	if !ok {
		t.Fatal("region should intersect")
	}

	var faces []FaceInfo
	VisitFacesInRegion(root, region, BorderMaterials{}, 8, func(f FaceInfo) { faces = append(faces, f) })

	if len(faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(faces))
	}
	for _, f := range faces {
		if f.Material != 5 {
			t.Fatalf("pruning failed: face from material %d leaked in", f.Material)
		}
	}
}

func TestVisitFacesInRegionIndependentOfWorldSize(t *testing.T) {
	count := func(root *cube.Cube) int {
		region, _ := RegionFromLocalAABB(
			mgl32.Vec3{2.0 / 8, 2.0 / 8, 2.0 / 8},
			mgl32.Vec3{3.0 / 8, 3.0 / 8, 3.0 / 8},
			3,
		)
		n := 0
		VisitFacesInRegion(root, region, BorderMaterials{}, 10, func(FaceInfo) { n++ })
		return n
	}

	small := cube.Solid(0).SetVoxel(2, 2, 2, 3, 5)
	// Same local content, far richer world elsewhere.
	big := small
	for i := int32(0); i < 8; i++ {
		big = big.SetVoxel(56+i, 60, 60, 6, cube.Material(i+1))
	}

	if a, b := count(small), count(big); a != b || a != 6 {
		t.Fatalf("face count must not depend on world size: small=%d big=%d", a, b)
	}
}

func TestVisitVoxelsInRegion(t *testing.T) {
	root := cube.Solid(0).
		SetVoxel(1, 1, 1, 2, 3).
		SetVoxel(2, 1, 1, 2, 4).
		SetVoxel(3, 3, 3, 2, 9)

	region, _ := RegionFromLocalAABB(mgl32.Vec3{0.2, 0.2, 0.2}, mgl32.Vec3{0.8, 0.5, 0.5}, 2)

	var got []VoxelInfo
	VisitVoxelsInRegion(root, region, BorderMaterials{}, 8, func(v VoxelInfo) { got = append(got, v) })

	if len(got) != 2 {
		t.Fatalf("got %d voxels, want 2", len(got))
	}
	materials := map[cube.Material]bool{}
	for _, v := range got {
		materials[v.Material] = true
		if v.Size != 0.25 {
			t.Fatalf("size: got %v, want 0.25", v.Size)
		}
	}
	if !materials[3] || !materials[4] {
		t.Fatalf("wrong voxels: %v", materials)
	}
}
