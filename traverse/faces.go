package traverse

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
)

// FaceInfo is one exposed voxel boundary: a face of a solid voxel whose
// neighbor on the Normal side is empty. Position is the solid voxel's
// minimum corner in [0,1]³ and Size its edge length; the face itself lies
// on the voxel side Normal points out of.
type FaceInfo struct {
	Normal   cube.Axis
	Position mgl32.Vec3
	Size     float32
	Material cube.Material
	Coord    cube.CubeCoord
}

// VoxelInfo is one solid voxel reported by a volume query.
type VoxelInfo struct {
	Position mgl32.Vec3
	Size     float32
	Material cube.Material
	Coord    cube.CubeCoord
}

var faceDirections = [6]struct {
	normal cube.Axis
	offset int
}{
	{cube.NegX, OffsetLeft},
	{cube.PosX, OffsetRight},
	{cube.NegY, OffsetDown},
	{cube.PosY, OffsetUp},
	{cube.NegZ, OffsetBack},
	{cube.PosZ, OffsetFront},
}

// VisitFaces reports every exposed boundary face in the octree. Faces are
// emitted from solid voxels toward empty neighbors, so a fully solid model
// still yields its outer hull against an empty border shell. When a solid
// leaf borders a finer subdivided neighbor it descends into virtual
// children until resolutions match.
func VisitFaces(root *cube.Cube, borders BorderMaterials, maxDepth int, visit func(FaceInfo)) {
	Traverse(root, borders, maxDepth, func(view NeighborView, coord cube.CubeCoord, canDescend bool) bool {
		center := view.Center()
		if !center.IsLeaf() {
			return true
		}
		return emitFaces(view, coord, center.Value(), visit)
	})
}

// VisitFacesInRegion is VisitFaces bounded to a region: subtrees that
// cannot intersect the bounds are pruned, and faces are emitted only for
// voxels the region contains. The visited face count scales with the
// region volume, not the model size.
func VisitFacesInRegion(root *cube.Cube, region RegionBounds, borders BorderMaterials, maxDepth int, visit func(FaceInfo)) {
	Traverse(root, borders, maxDepth, func(view NeighborView, coord cube.CubeCoord, canDescend bool) bool {
		if !region.MightContainDescendants(coord) {
			return false
		}
		center := view.Center()
		if !center.IsLeaf() {
			return true
		}
		if center.Value() == cube.Empty {
			return false
		}
		if !region.Contains(coord) {
			// A coarse leaf reaching into the region: descend into
			// virtual children until cells line up with the bounds.
			return true
		}
		return emitFaces(view, coord, center.Value(), visit)
	})
}

// VisitVoxelsInRegion reports every solid voxel inside the region,
// surface or not. Collision uses it when penetration can go deeper than
// one face.
func VisitVoxelsInRegion(root *cube.Cube, region RegionBounds, borders BorderMaterials, maxDepth int, visit func(VoxelInfo)) {
	Traverse(root, borders, maxDepth, func(view NeighborView, coord cube.CubeCoord, canDescend bool) bool {
		if !region.MightContainDescendants(coord) {
			return false
		}
		center := view.Center()
		if !center.IsLeaf() {
			return true
		}
		v := center.Value()
		if v == cube.Empty {
			return false
		}
		if !region.Contains(coord) {
			return true
		}
		visit(VoxelInfo{
			Position: coord.Min(),
			Size:     coord.Size(),
			Material: v,
			Coord:    coord,
		})
		return false
	})
}

// emitFaces checks the six neighbors of a solid leaf and emits one face
// per empty side. It requests descent when a neighbor is subdivided, so
// faces against finer geometry are resolved at the finer level.
func emitFaces(view NeighborView, coord cube.CubeCoord, material cube.Material, visit func(FaceInfo)) bool {
	if material == cube.Empty {
		return false
	}

	descend := false
	for _, d := range faceDirections {
		if n, ok := view.Neighbor(d.offset); ok {
			if !n.IsLeaf() {
				descend = true
				continue
			}
			if n.Value() != cube.Empty {
				continue
			}
		}
		visit(FaceInfo{
			Normal:   d.normal,
			Position: coord.Min(),
			Size:     coord.Size(),
			Material: material,
			Coord:    coord,
		})
	}
	return descend
}
