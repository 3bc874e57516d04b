package cube

import "testing"

func TestOctantIndexRoundTrip(t *testing.T) {
	for i := 0; i < 8; i++ {
		p := FromOctantIndex(i)
		if p.X>>1 != 0 || p.Y>>1 != 0 || p.Z>>1 != 0 {
			t.Fatalf("octant %d: position out of binary range: %v", i, p)
		}
		if got := p.OctantIndex(); got != i {
			t.Fatalf("octant %d: round trip gave %d", i, got)
		}
	}
	if FromOctantIndex(1) != (IVec3{1, 0, 0}) {
		t.Fatalf("octant 1 must be +X")
	}
	if FromOctantIndex(2) != (IVec3{0, 1, 0}) {
		t.Fatalf("octant 2 must be +Y")
	}
	if FromOctantIndex(4) != (IVec3{0, 0, 1}) {
		t.Fatalf("octant 4 must be +Z")
	}
}

func TestGetDepthOne(t *testing.T) {
	c := Tabulate(func(i int) *Cube { return Solid(Material(i + 1)) })
	for i := 0; i < 8; i++ {
		pos := FromOctantIndex(i)
		got := c.GetID(1, pos)
		if got != Material(i+1) {
			t.Fatalf("octant %d at %v: got %d, want %d", i, pos, got, i+1)
		}
	}
}

func TestGetThroughLeaf(t *testing.T) {
	c := Solid(7)
	// A leaf is uniform at any depth.
	if got := c.GetID(5, IVec3{13, 2, 30}); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestUpdateSetVoxel(t *testing.T) {
	root := Solid(0)
	updated := root.SetVoxel(3, 0, 0, 2, 42)

	if got := updated.GetID(2, IVec3{3, 0, 0}); got != 42 {
		t.Fatalf("set voxel: got %d, want 42", got)
	}
	if got := updated.GetID(2, IVec3{0, 0, 0}); got != 0 {
		t.Fatalf("untouched voxel changed: got %d", got)
	}
	// Original root is untouched.
	if got := root.GetID(2, IVec3{3, 0, 0}); got != 0 {
		t.Fatalf("original mutated: got %d", got)
	}
}

func TestUpdateSharesSiblings(t *testing.T) {
	base := Tabulate(func(i int) *Cube { return Solid(Material(i)) })
	updated := base.Update(CubeCoord{Pos: IVec3{1, 0, 0}, Depth: 1}, Solid(99))

	// Only the path to octant 1 is copied; the other children are shared.
	for i := 0; i < 8; i++ {
		if i == 1 {
			continue
		}
		if base.Child(i) != updated.Child(i) {
			t.Fatalf("sibling %d was copied instead of shared", i)
		}
	}
	if got := updated.GetID(1, IVec3{1, 0, 0}); got != 99 {
		t.Fatalf("got %d, want 99", got)
	}
}

func TestSimplified(t *testing.T) {
	uniform := Tabulate(func(int) *Cube { return Solid(5) })
	s := uniform.Simplified()
	if !s.IsLeaf() || s.Value() != 5 {
		t.Fatalf("uniform children should collapse to Solid(5), got %+v", s)
	}

	mixed := Tabulate(func(i int) *Cube {
		if i == 3 {
			return Solid(6)
		}
		return Solid(5)
	})
	if mixed.Simplified().IsLeaf() {
		t.Fatalf("mixed children must not collapse")
	}

	// Collapse propagates upward through nested uniform levels.
	nested := Tabulate(func(int) *Cube {
		return Tabulate(func(int) *Cube { return Solid(9) })
	})
	if n := nested.Simplified(); !n.IsLeaf() || n.Value() != 9 {
		t.Fatalf("nested uniform tree should collapse fully")
	}
}

func TestRepresentative(t *testing.T) {
	c := Tabulate(func(i int) *Cube { return Solid(Material(i + 10)) })
	if got := c.Representative(); got != 10 {
		t.Fatalf("representative should follow octant 0, got %d", got)
	}
}

func TestEqual(t *testing.T) {
	a := Solid(0).SetVoxel(1, 2, 3, 2, 8)
	b := Solid(0).SetVoxel(1, 2, 3, 2, 8)
	if !a.Equal(b) {
		t.Fatalf("structurally identical trees must be equal")
	}
	c := Solid(0).SetVoxel(1, 2, 2, 2, 8)
	if a.Equal(c) {
		t.Fatalf("different trees must not be equal")
	}
}

func TestMaxDepthAndCount(t *testing.T) {
	c := Solid(0).SetVoxel(0, 0, 0, 3, 1)
	if got := c.MaxDepth(); got != 3 {
		t.Fatalf("max depth: got %d, want 3", got)
	}
	// Three branches on the path, each with seven leaf siblings, plus the
	// final eight leaves: 3 + 3*7 + 1 = 25 counting the deepest level's 8.
	if got := c.CountNodes(); got != 25 {
		t.Fatalf("node count: got %d, want 25", got)
	}
}

func TestCoordChild(t *testing.T) {
	c := Root()
	c = c.Child(1) // +X
	c = c.Child(2) // +Y
	if c.Depth != 2 {
		t.Fatalf("depth: got %d, want 2", c.Depth)
	}
	if c.Pos != (IVec3{2, 1, 0}) {
		t.Fatalf("pos: got %v, want {2 1 0}", c.Pos)
	}
	if c.Size() != 0.25 {
		t.Fatalf("size: got %f, want 0.25", c.Size())
	}
}

func TestAxis(t *testing.T) {
	if PosX.Flip() != NegX || NegZ.Flip() != PosZ {
		t.Fatalf("flip broken")
	}
	if AxisFromIndexSign(1, -1) != NegY {
		t.Fatalf("from index/sign broken")
	}
	// Zero sign resolves to the positive direction.
	if AxisFromIndexSign(2, 0) != PosZ {
		t.Fatalf("zero sign must map to positive")
	}
	if n := NegY.Vec3(); n.Y() != -1 || n.X() != 0 || n.Z() != 0 {
		t.Fatalf("normal broken: %v", n)
	}
	stepped := PosZ.Step(IVec3{0, 0, 0})
	if stepped != (IVec3{0, 0, 1}) {
		t.Fatalf("step broken: %v", stepped)
	}
}

func TestHandlePublish(t *testing.T) {
	h := NewHandle(Solid(0))
	h.Edit(func(c *Cube) *Cube { return c.SetVoxel(0, 0, 0, 1, 3) })
	if got := h.Load().GetID(1, IVec3{0, 0, 0}); got != 3 {
		t.Fatalf("handle edit lost: got %d", got)
	}
}
