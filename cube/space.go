package cube

import "github.com/go-gl/mathgl/mgl32"

// Signed local space: traversal works per node in [-1,1]³, where octant
// boundaries sit at zero and each octant spans half the range per axis.

// OctantOf picks the octant containing a point of the signed node space.
// Points on an internal boundary resolve along the ray direction sign, so
// a ray entering at a mid-plane lands in the octant it is about to
// traverse.
func OctantOf(pos, dirSign mgl32.Vec3) IVec3 {
	var o IVec3
	for i := 0; i < 3; i++ {
		if pos[i] > 0 || (pos[i] == 0 && dirSign[i] > 0) {
			o = o.SetComp(i, 1)
		}
	}
	return o
}

// ChildLocal rebases a point of a node's signed space into the signed
// space of one of its octants.
func ChildLocal(pos mgl32.Vec3, octant IVec3) mgl32.Vec3 {
	return pos.Mul(2).Sub(octant.Vec3().Mul(2).Sub(mgl32.Vec3{1, 1, 1}))
}

// ParentLocal inverts ChildLocal, lifting a point of an octant's signed
// space back into the parent's.
func ParentLocal(pos mgl32.Vec3, octant IVec3) mgl32.Vec3 {
	return pos.Add(octant.Vec3().Mul(2).Sub(mgl32.Vec3{1, 1, 1})).Mul(0.5)
}
