// Package raycast finds the first non-empty voxel along a ray through an
// octree. The same DDA traversal exists in two forms: a recursive walk over
// an in-memory tree (Cast) and an iterative bounded-stack walk over raw BCF
// bytes (CastBCF) that mirrors what a shader would execute.
//
// Public ray origins live in the octree's [0,1]³ root space. Internally the
// traversal works in a signed [-1,1]³ space per node, where descending into
// an octant is origin*2 - (octant*2-1) and octant boundaries sit at zero.
package raycast

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
)

var (
	// ErrZeroDirection is returned when the ray direction is (near) zero.
	ErrZeroDirection = errors.New("raycast: zero ray direction")

	// ErrIterationLimit is returned when the traversal budget runs out
	// before the ray hits or leaves the tree. The result is inconclusive,
	// not a miss.
	ErrIterationLimit = errors.New("raycast: iteration limit exceeded")

	// ErrStackOverflow is returned by the iterative traversal when the
	// fixed frame stack cannot hold another descent. Like the iteration
	// limit it marks the result inconclusive rather than fabricating a
	// hit or a miss.
	ErrStackOverflow = errors.New("raycast: traversal stack overflow")
)

const (
	// DefaultMaxDepth bounds descent when Options.MaxDepth is unset.
	DefaultMaxDepth = 16

	// DefaultMaxIterations bounds node visits when Options.MaxIterations
	// is unset.
	DefaultMaxIterations = 4096

	// dirEpsilon is the magnitude below which a direction component is
	// treated as zero, so axis-aligned and grazing rays never divide by
	// zero in the step computation.
	dirEpsilon = 1e-12

	// boundaryEpsilon decides whether a clipped origin sits on a cube
	// face, which fixes the entry normal exactly instead of by heuristic.
	boundaryEpsilon = 1e-5
)

// Hit is the first non-empty voxel along a ray.
type Hit struct {
	Coord    cube.CubeCoord
	Position mgl32.Vec3 // entry point in [0,1]³ root space
	Normal   cube.Axis  // face the ray crossed to enter the voxel
	Value    cube.Material
}

// Options tune a cast. The zero value selects defaults: depth 16, 4096
// iterations, and material zero as empty.
type Options struct {
	// MaxDepth treats any node reached at this depth as a leaf, using its
	// representative material. Zero or negative selects DefaultMaxDepth.
	MaxDepth int

	// MaxIterations bounds the total number of node visits.
	MaxIterations int

	// IsEmpty decides which materials the ray passes through.
	IsEmpty func(cube.Material) bool
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.IsEmpty == nil {
		o.IsEmpty = func(v cube.Material) bool { return v == cube.Empty }
	}
	return o
}

var one = mgl32.Vec3{1, 1, 1}

// Cast shoots a ray through the tree and returns the first non-empty voxel,
// or (nil, nil) on a miss. The origin is in [0,1]³ root space; origins
// outside it are clipped to the entry point first. The direction does not
// need to be normalized.
func Cast(root *cube.Cube, origin, dir mgl32.Vec3, opts Options) (*Hit, error) {
	opts = opts.withDefaults()
	if dir.LenSqr() < dirEpsilon {
		return nil, ErrZeroDirection
	}

	local := origin.Mul(2).Sub(one)
	dirSign := signVec(dir)

	if maxAbsComp(local) > 1 {
		clipped, ok := clipEntry(local, dir)
		if !ok {
			return nil, nil
		}
		local = clipped
	}

	t := &caster{
		dir:     dir,
		dirSign: dirSign,
		opts:    opts,
		budget:  opts.MaxIterations,
	}
	return t.node(root, local, entryNormal(local, dir, dirSign), cube.Root())
}

type caster struct {
	dir     mgl32.Vec3
	dirSign mgl32.Vec3
	opts    Options
	budget  int
}

// node traverses one node in its own [-1,1]³ space. On a miss inside a
// child it DDA-steps the origin to the next octant the ray crosses.
func (t *caster) node(c *cube.Cube, origin mgl32.Vec3, normal cube.Axis, coord cube.CubeCoord) (*Hit, error) {
	t.budget--
	if t.budget < 0 {
		return nil, ErrIterationLimit
	}

	if c.IsLeaf() || coord.Depth >= t.opts.MaxDepth {
		v := c.Representative()
		if t.opts.IsEmpty(v) {
			return nil, nil
		}
		return &Hit{
			Coord:    coord,
			Position: rootPosition(coord, origin),
			Normal:   normal,
			Value:    v,
		}, nil
	}

	octant := cube.OctantOf(origin, t.dirSign)
	for {
		child := c.Child(octant.OctantIndex())
		childOrigin := cube.ChildLocal(origin, octant)
		childCoord := cube.CubeCoord{Pos: coord.Pos.Shl(1).Add(octant), Depth: coord.Depth + 1}

		hit, err := t.node(child, childOrigin, normal, childCoord)
		if hit != nil || err != nil {
			return hit, err
		}

		times := exitTimes(origin, t.dir, t.dirSign, octant)
		exit := minTimeAxis(times, t.dirSign)
		i := exit.Index()

		origin = origin.Add(t.dir.Mul(times[i]))
		octant = exit.Step(octant)
		// Snap the stepped component onto the crossed boundary (-1, 0 or 1).
		origin = exit.Set(origin, float32(octant.Comp(i))-float32(exit.Sign()+1)*0.5)
		normal = exit.Flip()

		if octant.Comp(i) < 0 || octant.Comp(i) > 1 {
			return nil, nil
		}
	}
}

// signVec maps each component to ±1; zero counts as positive.
func signVec(v mgl32.Vec3) mgl32.Vec3 {
	s := one
	for i := 0; i < 3; i++ {
		if v[i] < 0 {
			s[i] = -1
		}
	}
	return s
}

func maxAbsComp(v mgl32.Vec3) float32 {
	m := math32.Abs(v[0])
	if a := math32.Abs(v[1]); a > m {
		m = a
	}
	if a := math32.Abs(v[2]); a > m {
		m = a
	}
	return m
}

// exitTimes returns the per-axis parametric distance to the current
// octant's far boundary. The boundary comes from the tracked octant, not
// the origin's sign: after a corner crossing the position sits exactly on
// the remaining boundaries, and those axes must report a zero exit time.
// Axes with a near-zero direction never win the minimum.
func exitTimes(origin, dir, dirSign mgl32.Vec3, octant cube.IVec3) mgl32.Vec3 {
	var t mgl32.Vec3
	for i := 0; i < 3; i++ {
		ad := math32.Abs(dir[i])
		if ad < dirEpsilon {
			t[i] = math32.MaxFloat32
			continue
		}
		// Octant c spans [c-1, c]; the far boundary along +dir is c,
		// along -dir it is c-1.
		boundary := float32(octant.Comp(i)) - (1-dirSign[i])/2
		t[i] = math32.Abs(boundary-origin[i]) / ad
	}
	return t
}

// minTimeAxis picks the axis with the smallest exit time, ties resolving
// x before y before z.
func minTimeAxis(t, dirSign mgl32.Vec3) cube.Axis {
	i := 2
	if t[0] <= t[1] && t[0] <= t[2] {
		i = 0
	} else if t[1] <= t[2] {
		i = 1
	}
	return cube.AxisFromIndexSign(i, int(dirSign[i]))
}

// clipEntry slab-tests the ray against [-1,1]³ and returns the entry point,
// or false when the ray misses the cube entirely.
func clipEntry(origin, dir mgl32.Vec3) (mgl32.Vec3, bool) {
	tEnter := math32.Inf(-1)
	tLeave := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if math32.Abs(dir[i]) < dirEpsilon {
			if origin[i] < -1 || origin[i] > 1 {
				return mgl32.Vec3{}, false
			}
			continue
		}
		t0 := (-1 - origin[i]) / dir[i]
		t1 := (1 - origin[i]) / dir[i]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tLeave {
			tLeave = t1
		}
	}
	if tEnter > tLeave || tLeave < 0 {
		return mgl32.Vec3{}, false
	}
	if tEnter > 0 {
		origin = origin.Add(dir.Mul(tEnter))
	}
	return origin, true
}

// entryNormal derives the face the ray entered through. An origin on a cube
// face names that face exactly; for interior origins the dominant direction
// axis stands in for the face the ray would have crossed last.
func entryNormal(local, dir, dirSign mgl32.Vec3) cube.Axis {
	if math32.Abs(maxAbsComp(local)-1) < boundaryEpsilon {
		for i := 0; i < 3; i++ {
			if math32.Abs(math32.Abs(local[i])-1) < boundaryEpsilon {
				sign := 1
				if local[i] < 0 {
					sign = -1
				}
				return cube.AxisFromIndexSign(i, sign)
			}
		}
	}
	i := dominantAxis(dir)
	return cube.AxisFromIndexSign(i, -int(dirSign[i]))
}

func dominantAxis(dir mgl32.Vec3) int {
	ax, ay, az := math32.Abs(dir[0]), math32.Abs(dir[1]), math32.Abs(dir[2])
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

// rootPosition maps a point in a node's [-1,1]³ local space back to [0,1]³
// root space using the node's coordinate.
func rootPosition(coord cube.CubeCoord, local mgl32.Vec3) mgl32.Vec3 {
	size := coord.Size()
	return coord.Min().Add(local.Add(one).Mul(0.5 * size))
}
