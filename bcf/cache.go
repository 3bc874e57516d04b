package bcf

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/crossworld/cube/cube"
)

// Sum64 returns the content key of a BCF buffer. Equal buffers always hash
// equal, and serialization is deterministic, so the key identifies the tree.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Cache is a content-addressed store of parsed cubes keyed by buffer hash.
// Parsing the same buffer twice returns the same shared tree, which is safe
// because cubes are immutable.
type Cache struct {
	mu    sync.RWMutex
	trees map[uint64]*cube.Cube
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{trees: make(map[uint64]*cube.Cube)}
}

// Get parses data, reusing a previously parsed tree when the content key
// matches.
func (c *Cache) Get(data []byte) (*cube.Cube, error) {
	key := Sum64(data)

	c.mu.RLock()
	tree, ok := c.trees[key]
	c.mu.RUnlock()
	if ok {
		return tree, nil
	}

	tree, err := Parse(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.trees[key] = tree
	c.mu.Unlock()
	return tree, nil
}

// Put serializes a cube and stores it, returning the buffer and its key.
func (c *Cache) Put(tree *cube.Cube) ([]byte, uint64) {
	data := Serialize(tree)
	key := Sum64(data)
	c.mu.Lock()
	c.trees[key] = tree
	c.mu.Unlock()
	return data, key
}

// Len returns the number of cached trees.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.trees)
}
