package cube

import "github.com/go-gl/mathgl/mgl32"

// Axis is one of the six axis-aligned directions, used for face normals
// and traversal stepping.
type Axis int

const (
	PosX Axis = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// AxisFromIndexSign builds an axis from a component index (0=X, 1=Y, 2=Z)
// and a sign. Zero sign maps to the positive direction.
func AxisFromIndexSign(i int, sign int) Axis {
	a := Axis(i * 2)
	if sign < 0 {
		a++
	}
	return a
}

// Index returns the component index of the axis (0=X, 1=Y, 2=Z).
func (a Axis) Index() int {
	return int(a) / 2
}

// Sign returns +1 for positive directions, -1 for negative.
func (a Axis) Sign() int32 {
	if a&1 == 0 {
		return 1
	}
	return -1
}

// Flip returns the opposite direction.
func (a Axis) Flip() Axis {
	return a ^ 1
}

// Vec3 returns the unit normal.
func (a Axis) Vec3() mgl32.Vec3 {
	var v mgl32.Vec3
	v[a.Index()] = float32(a.Sign())
	return v
}

// Set returns v with the axis component replaced by f.
func (a Axis) Set(v mgl32.Vec3, f float32) mgl32.Vec3 {
	v[a.Index()] = f
	return v
}

// Step moves an octant position one cell along the axis.
func (a Axis) Step(o IVec3) IVec3 {
	i := a.Index()
	return o.SetComp(i, o.Comp(i)+a.Sign())
}

func (a Axis) String() string {
	switch a {
	case PosX:
		return "+x"
	case NegX:
		return "-x"
	case PosY:
		return "+y"
	case NegY:
		return "-y"
	case PosZ:
		return "+z"
	default:
		return "-z"
	}
}
