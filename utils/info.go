package utils

import (
	"fmt"

	"github.com/crossworld/cube/bcf"
	"github.com/crossworld/cube/cube"
)

// RunInfo validates a .bcf file and prints tree statistics.
func RunInfo(path string) error {
	tree, err := bcf.LoadFile(path)
	if err != nil {
		return err
	}

	leaves := 0
	tree.VisitLeaves(func(cube.CubeCoord, cube.Material) { leaves++ })
	nodes := tree.CountNodes()
	encoded := bcf.Serialize(tree)

	fmt.Printf("%s: valid\n", path)
	fmt.Printf("  encoded size: %d bytes (hash %016x)\n", len(encoded), bcf.Sum64(encoded))
	fmt.Printf("  nodes: %d total, %d leaves, %d branches, max depth %d\n",
		nodes, leaves, nodes-leaves, tree.MaxDepth())
	fmt.Printf("  distinct materials: %d\n", len(tree.Materials()))
	return nil
}

// RunEncode reads a .bcf file (raw or compressed container) and rewrites
// it, re-encoding the tree with minimal pointer widths.
func RunEncode(inPath, outPath string, compress bool) error {
	tree, err := bcf.LoadFile(inPath)
	if err != nil {
		return err
	}
	return bcf.SaveFile(outPath, tree, compress)
}
