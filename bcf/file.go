package bcf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/crossworld/cube/cube"
	"github.com/klauspost/compress/zstd"
)

// Compressed container magic, 'BCFZ' written little-endian like the frame
// magic it wraps.
const containerMagic uint32 = 0x4243465A

// SaveFile writes a cube to disk as BCF. With compress set, the frame is
// wrapped in a zstd container; either form loads back with LoadFile.
func SaveFile(path string, c *cube.Cube, compress bool) error {
	data := Serialize(c)
	if compress {
		var err error
		data, err = compressFrame(data)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFile reads a BCF file written by SaveFile, raw or compressed.
func LoadFile(path string) (*cube.Cube, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = unwrapFrame(data)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func compressFrame(frame []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, containerMagic); err != nil {
		return nil, err
	}
	buf.Write(enc.EncodeAll(frame, nil))
	return buf.Bytes(), nil
}

// unwrapFrame strips the container when present. A raw BCF frame passes
// through untouched.
func unwrapFrame(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errTruncated(4, len(data))
	}
	magic := binary.LittleEndian.Uint32(data)
	if magic != containerMagic {
		return data, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	frame, err := dec.DecodeAll(data[4:], nil)
	if err != nil {
		return nil, fmt.Errorf("bcf: decompress container: %w", err)
	}
	return frame, nil
}
