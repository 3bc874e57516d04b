package traverse

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
)

// RegionBounds is an axis-aligned block of octants at a fixed depth: the
// cells [Pos, Pos+Size) of the 2^Depth grid. It bounds a region query so
// traversal can prune subtrees that cannot intersect it.
type RegionBounds struct {
	Pos   cube.IVec3
	Depth int
	Size  cube.IVec3
}

// RegionFromLocalAABB converts a box in [0,1]³ octree-local space to
// bounds at the given depth. The box is clamped to the unit cube first;
// ok is false when it lies entirely outside.
func RegionFromLocalAABB(min, max mgl32.Vec3, depth int) (RegionBounds, bool) {
	for i := 0; i < 3; i++ {
		if max[i] < 0 || min[i] > 1 {
			return RegionBounds{}, false
		}
	}

	scale := float32(int32(1) << depth)
	var pos, size cube.IVec3
	for i := 0; i < 3; i++ {
		lo := math32.Max(min[i], 0)
		hi := math32.Min(max[i], 1)

		first := int32(math32.Floor(lo * scale))
		last := int32(math32.Ceil(hi*scale)) - 1
		if last < first {
			last = first
		}
		if first > int32(scale)-1 {
			first = int32(scale) - 1
		}
		pos = pos.SetComp(i, first)
		size = size.SetComp(i, last-first+1)
	}
	return RegionBounds{Pos: pos, Depth: depth, Size: size}, true
}

// OctantCount returns the number of cells the region covers at its depth.
func (r RegionBounds) OctantCount() int {
	return int(r.Size.X * r.Size.Y * r.Size.Z)
}

// Contains reports whether the voxel at coord lies inside the region.
// Deeper coordinates are contained when their cell falls within the
// region scaled to their depth; shallower coordinates when their scaled
// corner does.
func (r RegionBounds) Contains(coord cube.CubeCoord) bool {
	diff := coord.Depth - r.Depth
	switch {
	case diff > 0:
		return inBlock(coord.Pos, r.Pos.Shl(diff), r.Size.Shl(diff))
	case diff < 0:
		return inBlock(coord.Pos.Shl(-diff), r.Pos, r.Size)
	default:
		return inBlock(coord.Pos, r.Pos, r.Size)
	}
}

// MightContainDescendants reports whether any voxel at or below coord can
// fall inside the region. Traversal prunes a subtree when this is false.
func (r RegionBounds) MightContainDescendants(coord cube.CubeCoord) bool {
	diff := coord.Depth - r.Depth
	if diff >= 0 {
		return r.Contains(coord)
	}
	shift := -diff
	min := r.Pos.Shr(shift)
	max := r.Pos.Add(r.Size).Sub(cube.IVec3{X: 1, Y: 1, Z: 1}).Shr(shift)
	return coord.Pos.X >= min.X && coord.Pos.X <= max.X &&
		coord.Pos.Y >= min.Y && coord.Pos.Y <= max.Y &&
		coord.Pos.Z >= min.Z && coord.Pos.Z <= max.Z
}

func inBlock(p, pos, size cube.IVec3) bool {
	return p.X >= pos.X && p.X < pos.X+size.X &&
		p.Y >= pos.Y && p.Y < pos.Y+size.Y &&
		p.Z >= pos.Z && p.Z < pos.Z+size.Z
}
