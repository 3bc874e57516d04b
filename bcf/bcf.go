// Package bcf implements the Binary Cube Format, a compact serialization of
// sparse voxel octrees.
//
// A BCF buffer is a 12-byte header followed by depth-first node records:
//
//	Header:
//	  magic       u32 LE ('BCF1', 0x42434631)
//	  version     u8  (0x01)
//	  reserved    3 bytes (zero)
//	  root offset u32 LE (absolute byte offset of the root record)
//
//	Records, selected by the first byte:
//	  0b0VVVVVVV           inline leaf, value 0-127
//	  0x80, value          extended leaf, value 128-255
//	  0x90, v0..v7         octa-leaves, eight leaf values
//	  0xA0|SSSS, p0..p7    octa-pointers, eight absolute offsets of
//	                       width 2^SSSS bytes each, little-endian
//
// Every record type uses the smallest encoding that can represent the node,
// and octa-pointer nodes use the smallest pointer width whose offsets fit,
// so serialization is deterministic: equal trees produce equal bytes.
package bcf

import (
	"errors"
	"fmt"
)

const (
	// Magic is 'BCF1' interpreted big-endian; it is written little-endian,
	// matching the wire layout of every other integer in the format.
	Magic   uint32 = 0x42434631
	Version byte   = 0x01

	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 12

	// MaxRecursionDepth bounds parser descent so corrupt pointer cycles
	// cannot exhaust the stack.
	MaxRecursionDepth = 64

	msbMask   = 0x80
	typeMask  = 0x70
	sizeMask  = 0x0F
	valueMask = 0x7F

	extendedLeafBase = 0x80
	octaLeavesBase   = 0x90
	octaPointersBase = 0xA0
)

// Decode error taxonomy. Parse and Reader wrap these sentinels with the
// offending offsets so callers can both match and report.
var (
	ErrInvalidMagic       = errors.New("bcf: invalid magic")
	ErrUnsupportedVersion = errors.New("bcf: unsupported version")
	ErrInvalidType        = errors.New("bcf: invalid node type")
	ErrInvalidPointerSize = errors.New("bcf: invalid pointer size")
	ErrTruncated          = errors.New("bcf: truncated data")
	ErrInvalidOffset      = errors.New("bcf: offset out of bounds")
	ErrRecursionLimit     = errors.New("bcf: recursion limit exceeded")
)

func errTruncated(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, need, have)
}

func errOffset(offset, size int) error {
	return fmt.Errorf("%w: offset %d, buffer size %d", ErrInvalidOffset, offset, size)
}
