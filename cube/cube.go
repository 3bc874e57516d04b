// Package cube implements a sparse voxel octree. A Cube is either a solid
// leaf carrying a single material, or a branch with eight children. Nodes are
// immutable: every edit returns a new root and shares unchanged subtrees.
package cube

// Material is a voxel value. Zero means empty space.
type Material uint8

// Empty is the air material.
const Empty Material = 0

// Cube is one octree node. A leaf has children == nil and holds a material;
// a branch holds exactly eight children. Cubes must never be mutated after
// construction, so a *Cube can be shared freely between trees and goroutines.
type Cube struct {
	value    Material
	children *[8]*Cube
}

// Solid returns a leaf cube filled with the given material.
func Solid(v Material) *Cube {
	return &Cube{value: v}
}

// NewCubes returns a branch cube with the given eight children.
// All children must be non-nil.
func NewCubes(children [8]*Cube) *Cube {
	c := children
	return &Cube{children: &c}
}

// Tabulate builds a branch by calling init for each octant index 0-7.
func Tabulate(init func(octant int) *Cube) *Cube {
	var children [8]*Cube
	for i := range children {
		children[i] = init(i)
	}
	return NewCubes(children)
}

// IsLeaf reports whether this cube is a solid leaf.
func (c *Cube) IsLeaf() bool {
	return c.children == nil
}

// Value returns the material of a leaf. For branches it returns Empty;
// use Representative for a depth-collapsed value.
func (c *Cube) Value() Material {
	if c.children == nil {
		return c.value
	}
	return Empty
}

// Child returns the child at the given octant index, or the cube itself
// when it is a leaf. Leaves act as uniform volumes at every depth.
func (c *Cube) Child(octant int) *Cube {
	if c.children == nil {
		return c
	}
	return c.children[octant]
}

// Representative collapses a subtree to a single material. For a leaf this
// is its value; for a branch it descends the first octant, which keeps the
// choice deterministic for level-of-detail cuts.
func (c *Cube) Representative() Material {
	for c.children != nil {
		c = c.children[0]
	}
	return c.value
}

// Get returns the node addressed by coord. Positions are corner-based: at
// depth d each component lies in [0, 2^d). Leaves above the target depth
// are returned as-is since they are uniform.
func (c *Cube) Get(coord CubeCoord) *Cube {
	for d := coord.Depth; d > 0; d-- {
		if c.children == nil {
			return c
		}
		c = c.children[octantAt(coord.Pos, d-1)]
	}
	return c
}

// GetID returns the representative material at pos and depth.
func (c *Cube) GetID(depth int, pos IVec3) Material {
	return c.Get(CubeCoord{Pos: pos, Depth: depth}).Representative()
}

// octantAt extracts the octant index for pos at bit level d.
func octantAt(pos IVec3, d int) int {
	p := pos.Shr(d).And(1)
	return p.OctantIndex()
}

// expand returns the eight children of a node, replicating a leaf's value.
func (c *Cube) expand() [8]*Cube {
	if c.children != nil {
		return *c.children
	}
	var out [8]*Cube
	for i := range out {
		out[i] = c
	}
	return out
}

// UpdatedChild returns a copy of this cube with one child replaced.
// A leaf is expanded into eight uniform children first.
func (c *Cube) UpdatedChild(octant int, sub *Cube) *Cube {
	children := c.expand()
	children[octant] = sub
	return NewCubes(children)
}

// Update returns a new tree with the subtree at coord replaced by sub.
// Only the nodes along the path from the root are copied.
func (c *Cube) Update(coord CubeCoord, sub *Cube) *Cube {
	if coord.Depth == 0 {
		return sub
	}
	d := coord.Depth - 1
	idx := octantAt(coord.Pos, d)
	child := c.Child(idx).Update(CubeCoord{Pos: coord.Pos, Depth: d}, sub)
	return c.UpdatedChild(idx, child)
}

// SetVoxel returns a new tree with a single voxel set at (x, y, z) in the
// [0, 2^depth) grid.
func (c *Cube) SetVoxel(x, y, z int32, depth int, v Material) *Cube {
	return c.Update(CubeCoord{Pos: IVec3{x, y, z}, Depth: depth}, Solid(v))
}

// Simplified collapses branches whose children are all leaves with the same
// value. The result addresses identically to the input.
func (c *Cube) Simplified() *Cube {
	if c.children == nil {
		return c
	}
	var children [8]*Cube
	for i, ch := range c.children {
		children[i] = ch.Simplified()
	}
	first := children[0]
	if first.children == nil {
		uniform := true
		for _, ch := range children[1:] {
			if ch.children != nil || ch.value != first.value {
				uniform = false
				break
			}
		}
		if uniform {
			return first
		}
	}
	return NewCubes(children)
}

// Equal reports deep structural equality.
func (c *Cube) Equal(o *Cube) bool {
	if c == o {
		return true
	}
	if (c.children == nil) != (o.children == nil) {
		return false
	}
	if c.children == nil {
		return c.value == o.value
	}
	for i := range c.children {
		if !c.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// MaxDepth returns the depth of the deepest subdivision.
func (c *Cube) MaxDepth() int {
	if c.children == nil {
		return 0
	}
	max := 0
	for _, ch := range c.children {
		if d := ch.MaxDepth(); d > max {
			max = d
		}
	}
	return 1 + max
}

// CountNodes returns the total node count, branches included.
func (c *Cube) CountNodes() int {
	if c.children == nil {
		return 1
	}
	n := 1
	for _, ch := range c.children {
		n += ch.CountNodes()
	}
	return n
}

// Materials collects the set of leaf materials used in the tree.
func (c *Cube) Materials() map[Material]struct{} {
	set := make(map[Material]struct{})
	c.collectMaterials(set)
	return set
}

func (c *Cube) collectMaterials(set map[Material]struct{}) {
	if c.children == nil {
		set[c.value] = struct{}{}
		return
	}
	for _, ch := range c.children {
		ch.collectMaterials(set)
	}
}

// VisitLeaves walks every leaf in octant order, reporting its coordinate.
func (c *Cube) VisitLeaves(visit func(coord CubeCoord, v Material)) {
	c.visitLeaves(CubeCoord{}, visit)
}

func (c *Cube) visitLeaves(coord CubeCoord, visit func(CubeCoord, Material)) {
	if c.children == nil {
		visit(coord, c.value)
		return
	}
	for i, ch := range c.children {
		ch.visitLeaves(coord.Child(i), visit)
	}
}
