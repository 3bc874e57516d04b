package bcf

import (
	"fmt"

	"github.com/crossworld/cube/cube"
)

// Parse decodes a BCF buffer into an octree. The buffer is fully validated:
// bad magic, bad version, reserved record types, out-of-range pointers and
// truncated records all return an error, never a panic.
func Parse(data []byte) (*cube.Cube, error) {
	p, err := newParser(data)
	if err != nil {
		return nil, err
	}
	return p.parseNodeAt(p.rootOffset, 0)
}

type parser struct {
	data       []byte
	rootOffset int
}

func newParser(data []byte) (*parser, error) {
	r := NewReader(data)
	hdr, err := r.ReadHeader()
	if err != nil {
		return nil, err
	}
	return &parser{data: data, rootOffset: hdr.RootOffset}, nil
}

func (p *parser) parseNodeAt(offset, depth int) (*cube.Cube, error) {
	if depth >= MaxRecursionDepth {
		return nil, fmt.Errorf("%w: max depth %d", ErrRecursionLimit, MaxRecursionDepth)
	}
	if offset < 0 || offset >= len(p.data) {
		return nil, errOffset(offset, len(p.data))
	}

	typeByte := p.data[offset]
	if typeByte&msbMask == 0 {
		return cube.Solid(cube.Material(typeByte & valueMask)), nil
	}

	switch (typeByte & typeMask) >> 4 {
	case 0:
		// Only 0x80 is assigned; 0x81-0x8F are reserved.
		if typeByte != extendedLeafBase {
			return nil, fmt.Errorf("%w: type byte 0x%02X at offset %d", ErrInvalidType, typeByte, offset)
		}
		return p.parseExtendedLeaf(offset)
	case 1:
		return p.parseOctaLeaves(offset)
	case 2:
		return p.parseOctaPointers(offset, depth, typeByte&sizeMask)
	default:
		return nil, fmt.Errorf("%w: type byte 0x%02X at offset %d", ErrInvalidType, typeByte, offset)
	}
}

func (p *parser) parseExtendedLeaf(offset int) (*cube.Cube, error) {
	if offset+2 > len(p.data) {
		return nil, errTruncated(offset+2, len(p.data))
	}
	return cube.Solid(cube.Material(p.data[offset+1])), nil
}

func (p *parser) parseOctaLeaves(offset int) (*cube.Cube, error) {
	if offset+9 > len(p.data) {
		return nil, errTruncated(offset+9, len(p.data))
	}
	var children [8]*cube.Cube
	for i := range children {
		children[i] = cube.Solid(cube.Material(p.data[offset+1+i]))
	}
	return cube.NewCubes(children), nil
}

func (p *parser) parseOctaPointers(offset, depth int, ssss byte) (*cube.Cube, error) {
	if ssss > 3 {
		return nil, fmt.Errorf("%w: ssss=%d", ErrInvalidPointerSize, ssss)
	}
	width := 1 << ssss
	nodeSize := 1 + 8*width
	if offset+nodeSize > len(p.data) {
		return nil, errTruncated(offset+nodeSize, len(p.data))
	}

	r := NewReader(p.data)
	var children [8]*cube.Cube
	for i := range children {
		childOffset, err := r.readPointer(offset+1+i*width, ssss)
		if err != nil {
			return nil, err
		}
		child, err := p.parseNodeAt(childOffset, depth+1)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return cube.NewCubes(children), nil
}
