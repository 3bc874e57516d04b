package raycast

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/bcf"
	"github.com/crossworld/cube/cube"
)

// MaxStackDepth is the frame capacity of the iterative traversal. It is
// fixed so the algorithm translates directly to a shader, where the stack
// is a local array. Deeper traversals fail with ErrStackOverflow.
const MaxStackDepth = 16

// frame is one suspended descent: a node offset in the BCF buffer plus the
// ray state in that node's [-1,1]³ local space. The direction is global and
// lives outside the stack.
type frame struct {
	offset int
	origin mgl32.Vec3
	normal cube.Axis
	coord  cube.CubeCoord
}

// CastBCF shoots a ray through a BCF buffer without reconstructing the
// tree. It follows the same DDA as Cast but iteratively, with an explicit
// bounded stack, the way a fragment or compute shader has to: children
// crossed by the ray are collected per node and pushed in reverse so the
// nearest pops first.
//
// Malformed buffers surface the bcf decode errors. Exhausting the stack or
// the iteration budget returns ErrStackOverflow or ErrIterationLimit; both
// mean inconclusive, never a fabricated hit.
func CastBCF(data []byte, origin, dir mgl32.Vec3, opts Options) (*Hit, error) {
	opts = opts.withDefaults()
	if dir.LenSqr() < dirEpsilon {
		return nil, ErrZeroDirection
	}

	r := bcf.NewReader(data)
	header, err := r.ReadHeader()
	if err != nil {
		return nil, err
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

	var stack [MaxStackDepth]frame
	stack[0] = frame{
		offset: header.RootOffset,
		origin: local,
		normal: entryNormal(local, dir, dirSign),
		coord:  cube.Root(),
	}
	sp := 1
	budget := opts.MaxIterations

	for sp > 0 {
		budget--
		if budget < 0 {
			return nil, ErrIterationLimit
		}

		sp--
		st := stack[sp]

		node, err := r.ReadNodeAt(st.offset)
		if err != nil {
			return nil, err
		}

		// Depth cut: a branch reached at MaxDepth acts as a solid leaf.
		if node.Kind != bcf.KindLeaf && st.coord.Depth >= opts.MaxDepth {
			v, err := representativeAt(r, node)
			if err != nil {
				return nil, err
			}
			node = bcf.Node{Kind: bcf.KindLeaf, Value: v}
		}

		switch node.Kind {
		case bcf.KindLeaf:
			if !opts.IsEmpty(node.Value) {
				return &Hit{
					Coord:    st.coord,
					Position: rootPosition(st.coord, st.origin),
					Normal:   st.normal,
					Value:    node.Value,
				}, nil
			}

		case bcf.KindOctaLeaves:
			// All children are leaves: resolve the whole node with one
			// DDA sweep, no pushes.
			octant := cube.OctantOf(st.origin, dirSign)
			pos := st.origin
			normal := st.normal
			for {
				v := node.Values[octant.OctantIndex()]
				if !opts.IsEmpty(v) {
					childCoord := cube.CubeCoord{Pos: st.coord.Pos.Shl(1).Add(octant), Depth: st.coord.Depth + 1}
					childOrigin := cube.ChildLocal(pos, octant)
					return &Hit{
						Coord:    childCoord,
						Position: rootPosition(childCoord, childOrigin),
						Normal:   normal,
						Value:    v,
					}, nil
				}
				var exited bool
				pos, octant, normal, exited = ddaStep(pos, dir, dirSign, octant)
				if exited {
					break
				}
			}

		case bcf.KindOctaPointers:
			// Collect the octants the ray crosses in order, then push in
			// reverse so the nearest child pops first.
			var pending [8]frame
			count := 0

			octant := cube.OctantOf(st.origin, dirSign)
			pos := st.origin
			normal := st.normal
			for {
				childOrigin := cube.ChildLocal(pos, octant)
				pending[count] = frame{
					offset: node.Pointers[octant.OctantIndex()],
					origin: childOrigin,
					normal: normal,
					coord:  cube.CubeCoord{Pos: st.coord.Pos.Shl(1).Add(octant), Depth: st.coord.Depth + 1},
				}
				count++

				var exited bool
				pos, octant, normal, exited = ddaStep(pos, dir, dirSign, octant)
				if exited {
					break
				}
			}

			if sp+count > MaxStackDepth {
				return nil, ErrStackOverflow
			}
			for i := count - 1; i >= 0; i-- {
				stack[sp] = pending[i]
				sp++
			}
		}
	}

	return nil, nil
}

// ddaStep advances the ray within a node's [-1,1]³ space to the next octant
// boundary. It returns the new position snapped onto that boundary, the new
// octant, the entry normal for it, and whether the ray left the node.
func ddaStep(pos, dir, dirSign mgl32.Vec3, octant cube.IVec3) (mgl32.Vec3, cube.IVec3, cube.Axis, bool) {
	times := exitTimes(pos, dir, dirSign, octant)
	exit := minTimeAxis(times, dirSign)
	i := exit.Index()

	pos = pos.Add(dir.Mul(times[i]))
	octant = exit.Step(octant)
	pos = exit.Set(pos, float32(octant.Comp(i))-float32(exit.Sign()+1)*0.5)

	exited := octant.Comp(i) < 0 || octant.Comp(i) > 1
	return pos, octant, exit.Flip(), exited
}

// representativeAt collapses a branch record to a material by following
// first-octant links, matching Cube.Representative.
func representativeAt(r *bcf.Reader, node bcf.Node) (cube.Material, error) {
	for i := 0; i < bcf.MaxRecursionDepth; i++ {
		switch node.Kind {
		case bcf.KindLeaf:
			return node.Value, nil
		case bcf.KindOctaLeaves:
			return node.Values[0], nil
		default:
			var err error
			node, err = r.ReadNodeAt(node.Pointers[0])
			if err != nil {
				return 0, err
			}
		}
	}
	return 0, bcf.ErrRecursionLimit
}
