package bcf

import (
	"fmt"

	"github.com/crossworld/cube/cube"
)

// Header is the parsed 12-byte file header.
type Header struct {
	Magic      uint32
	Version    byte
	RootOffset int
}

// NodeKind discriminates decoded records.
type NodeKind int

const (
	// KindLeaf is an inline or extended leaf.
	KindLeaf NodeKind = iota
	// KindOctaLeaves is a branch whose eight children are all leaves.
	KindOctaLeaves
	// KindOctaPointers is a branch with eight child offsets.
	KindOctaPointers
)

// Node is one decoded record. Value is set for KindLeaf, Values for
// KindOctaLeaves, Pointers for KindOctaPointers.
type Node struct {
	Kind     NodeKind
	Value    cube.Material
	Values   [8]cube.Material
	Pointers [8]int
}

// Reader gives byte-addressed access to a BCF buffer without building the
// tree. Every read is bounds-checked and the decode logic sticks to plain
// arithmetic and bit operations so it can be translated line for line into
// a shader.
type Reader struct {
	data []byte
}

// NewReader wraps a BCF buffer. The buffer is not validated until read.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the buffer length.
func (r *Reader) Len() int {
	return len(r.data)
}

// ReadU8 reads one byte at offset.
func (r *Reader) ReadU8(offset int) (byte, error) {
	if offset < 0 || offset >= len(r.data) {
		return 0, errOffset(offset, len(r.data))
	}
	return r.data[offset], nil
}

// ReadU16 reads a little-endian u16 at offset.
func (r *Reader) ReadU16(offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(r.data) {
		return 0, errTruncated(offset+2, len(r.data))
	}
	b0 := uint16(r.data[offset])
	b1 := uint16(r.data[offset+1])
	return b0 | b1<<8, nil
}

// ReadU32 reads a little-endian u32 at offset.
func (r *Reader) ReadU32(offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(r.data) {
		return 0, errTruncated(offset+4, len(r.data))
	}
	b0 := uint32(r.data[offset])
	b1 := uint32(r.data[offset+1])
	b2 := uint32(r.data[offset+2])
	b3 := uint32(r.data[offset+3])
	return b0 | b1<<8 | b2<<16 | b3<<24, nil
}

// ReadU64 reads a little-endian u64 at offset.
func (r *Reader) ReadU64(offset int) (uint64, error) {
	if offset < 0 || offset+8 > len(r.data) {
		return 0, errTruncated(offset+8, len(r.data))
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(r.data[offset+i]) << (8 * i)
	}
	return v, nil
}

func (r *Reader) readPointer(offset int, ssss byte) (int, error) {
	var v uint64
	var err error
	switch ssss {
	case 0:
		b, e := r.ReadU8(offset)
		v, err = uint64(b), e
	case 1:
		u, e := r.ReadU16(offset)
		v, err = uint64(u), e
	case 2:
		u, e := r.ReadU32(offset)
		v, err = uint64(u), e
	case 3:
		v, err = r.ReadU64(offset)
	default:
		return 0, fmt.Errorf("%w: ssss=%d", ErrInvalidPointerSize, ssss)
	}
	if err != nil {
		return 0, err
	}
	// Bound before the int conversion: a 64-bit pointer can wrap negative.
	if v >= uint64(len(r.data)) {
		return 0, fmt.Errorf("%w: pointer %d, buffer size %d", ErrInvalidOffset, v, len(r.data))
	}
	return int(v), nil
}

// ReadHeader validates and returns the file header.
func (r *Reader) ReadHeader() (Header, error) {
	if len(r.data) < HeaderSize {
		return Header{}, errTruncated(HeaderSize, len(r.data))
	}
	magic, err := r.ReadU32(0)
	if err != nil {
		return Header{}, err
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("%w: expected 0x%08X, found 0x%08X", ErrInvalidMagic, Magic, magic)
	}
	version := r.data[4]
	if version != Version {
		return Header{}, fmt.Errorf("%w: 0x%02X", ErrUnsupportedVersion, version)
	}
	root, err := r.ReadU32(8)
	if err != nil {
		return Header{}, err
	}
	if int(root) >= len(r.data) {
		return Header{}, errOffset(int(root), len(r.data))
	}
	return Header{Magic: magic, Version: version, RootOffset: int(root)}, nil
}

// ReadNodeAt decodes the record at offset.
func (r *Reader) ReadNodeAt(offset int) (Node, error) {
	typeByte, err := r.ReadU8(offset)
	if err != nil {
		return Node{}, err
	}

	if typeByte&msbMask == 0 {
		return Node{Kind: KindLeaf, Value: cube.Material(typeByte & valueMask)}, nil
	}

	switch (typeByte & typeMask) >> 4 {
	case 0:
		// Only 0x80 is assigned; 0x81-0x8F are reserved.
		if typeByte != extendedLeafBase {
			return Node{}, fmt.Errorf("%w: 0x%02X", ErrInvalidType, typeByte)
		}
		v, err := r.ReadU8(offset + 1)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindLeaf, Value: cube.Material(v)}, nil
	case 1:
		var n Node
		n.Kind = KindOctaLeaves
		for i := 0; i < 8; i++ {
			v, err := r.ReadU8(offset + 1 + i)
			if err != nil {
				return Node{}, err
			}
			n.Values[i] = cube.Material(v)
		}
		return n, nil
	case 2:
		ssss := typeByte & sizeMask
		if ssss > 3 {
			return Node{}, fmt.Errorf("%w: ssss=%d", ErrInvalidPointerSize, ssss)
		}
		width := 1 << ssss
		var n Node
		n.Kind = KindOctaPointers
		for i := 0; i < 8; i++ {
			p, err := r.readPointer(offset+1+i*width, ssss)
			if err != nil {
				return Node{}, err
			}
			n.Pointers[i] = p
		}
		return n, nil
	default:
		return Node{}, fmt.Errorf("%w: type byte 0x%02X at offset %d", ErrInvalidType, typeByte, offset)
	}
}
