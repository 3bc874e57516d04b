package bcf

import (
	"encoding/binary"

	"github.com/crossworld/cube/cube"
)

// Serialize encodes a cube into a BCF buffer.
//
// Nodes are written depth-first, parents before children, with absolute
// offsets. Pointer widths are chosen by a measuring pre-pass: every branch
// starts at width 1, and any branch whose last child offset no longer fits
// is widened and the tree re-placed until the layout is stable. Widths only
// grow, so the pass terminates, and the result is the smallest width per
// node that can hold its offsets.
func Serialize(c *cube.Cube) []byte {
	plan := newLayout(c)
	end := plan.place(HeaderSize)
	for plan.grow() {
		end = plan.place(HeaderSize)
	}

	buf := make([]byte, HeaderSize, end)
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	buf[4] = Version
	binary.LittleEndian.PutUint32(buf[8:12], uint32(plan.offset))
	return plan.emit(buf)
}

// layoutNode mirrors one record of the eventual buffer. children is nil for
// leaf and octa-leaves records, which have a fixed size.
type layoutNode struct {
	cube     *cube.Cube
	children []*layoutNode
	ssss     int
	offset   int
}

func newLayout(c *cube.Cube) *layoutNode {
	n := &layoutNode{cube: c}
	if c.IsLeaf() || allLeaves(c) {
		return n
	}
	n.children = make([]*layoutNode, 8)
	for i := range n.children {
		n.children[i] = newLayout(c.Child(i))
	}
	return n
}

// place assigns offsets under the current widths and returns the end offset.
func (n *layoutNode) place(offset int) int {
	n.offset = offset
	if n.children == nil {
		return offset + n.recordSize()
	}
	offset += 1 + 8<<n.ssss
	for _, ch := range n.children {
		offset = ch.place(offset)
	}
	return offset
}

func (n *layoutNode) recordSize() int {
	if !n.cube.IsLeaf() {
		return 9 // octa-leaves
	}
	if n.cube.Value() <= valueMask {
		return 1
	}
	return 2 // extended leaf
}

// grow widens every branch whose last child offset overflows its pointer
// width. It reports whether any width changed; callers re-place and retry
// until it returns false.
func (n *layoutNode) grow() bool {
	if n.children == nil {
		return false
	}
	grew := false
	if n.ssss < 3 && n.children[7].offset > maxOffsetFor(1<<n.ssss) {
		n.ssss++
		grew = true
	}
	for _, ch := range n.children {
		if ch.grow() {
			grew = true
		}
	}
	return grew
}

// emit appends the planned records to buf. Offsets were fixed by place, so
// this is a single pass.
func (n *layoutNode) emit(buf []byte) []byte {
	if n.children == nil {
		return n.emitLeaf(buf)
	}

	width := 1 << n.ssss
	buf = append(buf, octaPointersBase|byte(n.ssss))
	start := len(buf)
	for i := 0; i < 8*width; i++ {
		buf = append(buf, 0)
	}
	for i, ch := range n.children {
		putPointer(buf[start+i*width:], width, uint64(ch.offset))
		buf = ch.emit(buf)
	}
	return buf
}

func (n *layoutNode) emitLeaf(buf []byte) []byte {
	if n.cube.IsLeaf() {
		return writeLeaf(buf, n.cube.Value())
	}
	buf = append(buf, octaLeavesBase)
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(n.cube.Child(i).Value()))
	}
	return buf
}

func writeLeaf(buf []byte, v cube.Material) []byte {
	if v <= valueMask {
		return append(buf, byte(v))
	}
	return append(buf, extendedLeafBase, byte(v))
}

func allLeaves(c *cube.Cube) bool {
	for i := 0; i < 8; i++ {
		if !c.Child(i).IsLeaf() {
			return false
		}
	}
	return true
}

func maxOffsetFor(width int) int {
	return int(uint64(1)<<(8*width) - 1)
}

func putPointer(dst []byte, width int, v uint64) {
	switch width {
	case 1:
		dst[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	default:
		binary.LittleEndian.PutUint64(dst, v)
	}
}
