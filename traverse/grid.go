// Package traverse walks an octree with neighbor context. A sliding 4×4×4
// grid keeps every visited voxel surrounded by its face neighbors, with a
// configurable border shell standing in for the world outside the root.
// On top of the traversal sit the face and voxel region queries used by
// meshing and collision.
package traverse

import (
	"github.com/crossworld/cube/cube"
)

// Linear offsets between adjacent cells of the 4×4×4 grid, where
// index = x + y*4 + z*16.
const (
	OffsetLeft  = -1
	OffsetRight = 1
	OffsetDown  = -4
	OffsetUp    = 4
	OffsetBack  = -16
	OffsetFront = 16
)

// gridCells is the cell count of one neighbor grid.
const gridCells = 64

// centerIndex is the grid cell (1,1,1), the origin octant of the inner
// 2×2×2 block.
const centerIndex = 21

// BorderMaterials fills the grid's outer shell, one material per Y layer
// from bottom to top. A world typically uses something like
// {rock, water, air, air}; a free-floating model uses all air.
type BorderMaterials [4]cube.Material

// NeighborGrid is a 4×4×4 window of octree nodes. The inner 2×2×2 block
// holds the eight octants of the node being traversed; the surrounding
// shell holds that node's outside neighbors, so every inner cell can see
// all six face neighbors.
type NeighborGrid struct {
	voxels [gridCells]*cube.Cube
}

// NewNeighborGrid builds the root window: the root's octants in the
// center, border materials in the shell.
func NewNeighborGrid(root *cube.Cube, borders BorderMaterials) *NeighborGrid {
	g := &NeighborGrid{}
	for i := range g.voxels {
		_, y, _ := gridPos(i)
		g.voxels[i] = cube.Solid(borders[y])
	}
	for octant := 0; octant < 8; octant++ {
		p := cube.FromOctantIndex(octant)
		g.voxels[gridIndex(int(p.X)+1, int(p.Y)+1, int(p.Z)+1)] = root.Child(octant)
	}
	return g
}

func gridIndex(x, y, z int) int {
	return x + y*4 + z*16
}

func gridPos(index int) (x, y, z int) {
	return index % 4, (index / 4) % 4, index / 16
}

// Voxel returns the cell at a linear index.
func (g *NeighborGrid) Voxel(index int) *cube.Cube {
	return g.voxels[index]
}

// View centers a NeighborView on a cell.
func (g *NeighborGrid) View(index int) NeighborView {
	return NeighborView{grid: g, center: index}
}

// NeighborView is a cursor into a grid: one center cell plus directional
// access to its neighbors. Views are only ever centered on inner cells,
// so single-step offsets stay inside the grid.
type NeighborView struct {
	grid   *NeighborGrid
	center int
}

// Center returns the voxel the view is focused on.
func (v NeighborView) Center() *cube.Cube {
	return v.grid.voxels[v.center]
}

// Neighbor returns the voxel at one of the Offset* constants from the
// center, and whether it exists in the grid.
func (v NeighborView) Neighbor(offset int) (*cube.Cube, bool) {
	i := v.center + offset
	if i < 0 || i >= gridCells {
		return nil, false
	}
	return v.grid.voxels[i], true
}

// ChildGrid builds the 4×4×4 window one level deeper, centered on this
// view. Each new cell is a child octant of one of the eight cells around
// the center; leaves replicate their value, so the shell descends with
// the traversal at matching resolution.
//
// For a cell position p in 0..3 the source parent lies at (p+1)/2-1
// relative to the center and the child octant bit is (p+1)%2.
func (v NeighborView) ChildGrid() *NeighborGrid {
	g := &NeighborGrid{}
	for i := range g.voxels {
		x, y, z := gridPos(i)

		px, bx := (x+1)/2-1, int32((x+1)%2)
		py, by := (y+1)/2-1, int32((y+1)%2)
		pz, bz := (z+1)/2-1, int32((z+1)%2)

		parent := v.grid.voxels[v.center+px+py*4+pz*16]
		octant := cube.IVec3{X: bx, Y: by, Z: bz}.OctantIndex()
		g.voxels[i] = parent.Child(octant)
	}
	return g
}

// Visitor inspects one voxel with its neighbor context. canDescend is
// false when the depth limit cuts the traversal here. The return value
// requests descent into the voxel's eight octants; it is ignored when
// canDescend is false. Leaves descend into virtual uniform children,
// which lets a visitor match a coarse solid against a finer neighbor.
type Visitor func(view NeighborView, coord cube.CubeCoord, canDescend bool) bool

// Traverse walks the octree depth-first with neighbor context. The eight
// root octants are visited at depth 1 with coordinates from
// cube.Root().Child.
func Traverse(root *cube.Cube, borders BorderMaterials, maxDepth int, visit Visitor) {
	grid := NewNeighborGrid(root, borders)
	for octant := 0; octant < 8; octant++ {
		p := cube.FromOctantIndex(octant)
		view := grid.View(centerIndex + int(p.X) + int(p.Y)*4 + int(p.Z)*16)
		traverseView(view, cube.Root().Child(octant), maxDepth, visit)
	}
}

func traverseView(view NeighborView, coord cube.CubeCoord, maxDepth int, visit Visitor) {
	if coord.Depth >= maxDepth {
		visit(view, coord, false)
		return
	}
	if !visit(view, coord, true) {
		return
	}
	child := view.ChildGrid()
	for octant := 0; octant < 8; octant++ {
		p := cube.FromOctantIndex(octant)
		childView := child.View(centerIndex + int(p.X) + int(p.Y)*4 + int(p.Z)*16)
		traverseView(childView, coord.Child(octant), maxDepth, visit)
	}
}
