package cube

import "github.com/go-gl/mathgl/mgl32"

// IVec3 is an integer 3-vector used for octree addressing.
type IVec3 struct {
	X, Y, Z int32
}

// FromOctantIndex converts an octant index 0-7 to its binary position.
// Layout: index = x + y*2 + z*4.
func FromOctantIndex(index int) IVec3 {
	return IVec3{
		X: int32(index & 1),
		Y: int32((index >> 1) & 1),
		Z: int32((index >> 2) & 1),
	}
}

// OctantIndex converts a binary position (components 0 or 1) to its octant
// index: x + y*2 + z*4.
func (v IVec3) OctantIndex() int {
	return int(v.X) | int(v.Y)<<1 | int(v.Z)<<2
}

// Add returns v + o componentwise.
func (v IVec3) Add(o IVec3) IVec3 {
	return IVec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o componentwise.
func (v IVec3) Sub(o IVec3) IVec3 {
	return IVec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s componentwise.
func (v IVec3) Scale(s int32) IVec3 {
	return IVec3{v.X * s, v.Y * s, v.Z * s}
}

// Shl shifts every component left by n bits.
func (v IVec3) Shl(n int) IVec3 {
	return IVec3{v.X << n, v.Y << n, v.Z << n}
}

// Shr shifts every component right by n bits (arithmetic shift).
func (v IVec3) Shr(n int) IVec3 {
	return IVec3{v.X >> n, v.Y >> n, v.Z >> n}
}

// And masks every component with m.
func (v IVec3) And(m int32) IVec3 {
	return IVec3{v.X & m, v.Y & m, v.Z & m}
}

// Vec3 converts to a float vector.
func (v IVec3) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Comp returns the component at axis index i (0=X, 1=Y, 2=Z).
func (v IVec3) Comp(i int) int32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetComp returns v with the component at axis index i replaced.
func (v IVec3) SetComp(i int, val int32) IVec3 {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

// CubeCoord addresses a node in the octree. Positions are corner-based:
// the root is {0,0,0} at depth 0, and at depth d every component lies in
// [0, 2^d). Each descent doubles the position and adds the octant bit.
type CubeCoord struct {
	Pos   IVec3
	Depth int
}

// Root returns the root coordinate.
func Root() CubeCoord {
	return CubeCoord{}
}

// Child returns the coordinate of the given octant one level deeper.
func (c CubeCoord) Child(octant int) CubeCoord {
	return CubeCoord{
		Pos:   c.Pos.Shl(1).Add(FromOctantIndex(octant)),
		Depth: c.Depth + 1,
	}
}

// Size returns the edge length of this cell in [0,1] root space.
func (c CubeCoord) Size() float32 {
	return 1.0 / float32(int32(1)<<c.Depth)
}

// Min returns the minimum corner of this cell in [0,1] root space.
func (c CubeCoord) Min() mgl32.Vec3 {
	return c.Pos.Vec3().Mul(c.Size())
}
