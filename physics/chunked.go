package physics

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
	"github.com/crossworld/cube/traverse"
)

type chunkData struct {
	collider  ColliderID
	faceCount int
}

// ChunkedCollider keeps static face sets only for world chunks near
// dynamic bodies, loading and unloading them as bodies move. Init is
// cheap; the cost shifts to Update.
type ChunkedCollider struct {
	root       *cube.Cube
	worldSize  float32
	chunkSize  float32
	loadRadius float32
	queryDepth int
	borders    traverse.BorderMaterials

	active map[cube.IVec3]chunkData

	initTime    time.Duration
	lastUpdate  time.Duration
	loadedFaces int
}

// NewChunkedCollider builds the proximity-loading strategy. chunkSize is
// the chunk edge in world units, loadRadius how far around a body chunks
// stay resident, and queryDepth the face resolution per chunk.
func NewChunkedCollider(chunkSize, loadRadius float32, queryDepth int) *ChunkedCollider {
	return &ChunkedCollider{
		chunkSize:  chunkSize,
		loadRadius: loadRadius,
		queryDepth: queryDepth,
		active:     make(map[cube.IVec3]chunkData),
	}
}

func (c *ChunkedCollider) Init(root *cube.Cube, worldSize float32, borders traverse.BorderMaterials, world *World) error {
	if root == nil {
		return ErrNilCube
	}
	if worldSize <= 0 {
		return ErrBadWorldSize
	}
	start := time.Now()
	c.root = root
	c.worldSize = worldSize
	c.borders = borders
	c.initTime = time.Since(start)
	return nil
}

func (c *ChunkedCollider) Update(dynamic []BodyAabb, world *World) {
	start := time.Now()

	required := make(map[cube.IVec3]bool)
	for _, d := range dynamic {
		expanded := d.Aabb.Expand(c.loadRadius)
		c.chunksInAabb(expanded, func(pos cube.IVec3) {
			required[pos] = true
		})
	}

	for pos, chunk := range c.active {
		if !required[pos] {
			world.RemoveCollider(chunk.collider)
			c.loadedFaces -= chunk.faceCount
			delete(c.active, pos)
		}
	}

	for pos := range required {
		if _, ok := c.active[pos]; ok {
			continue
		}
		if chunk, ok := c.generateChunk(pos, world); ok {
			c.loadedFaces += chunk.faceCount
			c.active[pos] = chunk
		}
	}

	c.lastUpdate = time.Since(start)
}

func (c *ChunkedCollider) ResolveCollision(bodyAabb Aabb) mgl32.Vec3 {
	// The world resolves against the loaded chunk faces during Step.
	return mgl32.Vec3{}
}

func (c *ChunkedCollider) Metrics() ColliderMetrics {
	return ColliderMetrics{
		Strategy:        StrategyChunked,
		InitTime:        c.initTime,
		UpdateTime:      c.lastUpdate,
		ActiveColliders: len(c.active),
		TotalFaces:      c.loadedFaces,
	}
}

// worldToChunk maps a world position to its chunk cell. Chunk (0,0,0)
// starts at the world's minimum corner.
func (c *ChunkedCollider) worldToChunk(pos mgl32.Vec3) cube.IVec3 {
	half := c.worldSize / 2
	return cube.IVec3{
		X: int32(math32.Floor((pos[0] + half) / c.chunkSize)),
		Y: int32(math32.Floor((pos[1] + half) / c.chunkSize)),
		Z: int32(math32.Floor((pos[2] + half) / c.chunkSize)),
	}
}

func (c *ChunkedCollider) chunksInAabb(box Aabb, f func(cube.IVec3)) {
	min := c.worldToChunk(box.Min)
	max := c.worldToChunk(box.Max)
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				f(cube.IVec3{X: x, Y: y, Z: z})
			}
		}
	}
}

// generateChunk builds the static face set for one chunk cell. Chunks
// with no exposed faces are skipped.
func (c *ChunkedCollider) generateChunk(pos cube.IVec3, world *World) (chunkData, bool) {
	half := c.worldSize / 2
	chunkMin := mgl32.Vec3{
		float32(pos.X)*c.chunkSize - half,
		float32(pos.Y)*c.chunkSize - half,
		float32(pos.Z)*c.chunkSize - half,
	}
	chunkMax := chunkMin.Add(mgl32.Vec3{c.chunkSize, c.chunkSize, c.chunkSize})

	localMin, localMax, ok := localAabb(Aabb{Min: chunkMin, Max: chunkMax}, c.worldSize)
	if !ok {
		return chunkData{}, false
	}
	region, ok := traverse.RegionFromLocalAABB(localMin, localMax, c.queryDepth)
	if !ok {
		return chunkData{}, false
	}

	var faces []Face
	traverse.VisitFacesInRegion(c.root, region, c.borders, c.queryDepth+faceDepthMargin, func(f traverse.FaceInfo) {
		faces = append(faces, worldFace(f, c.worldSize))
	})
	if len(faces) == 0 {
		return chunkData{}, false
	}

	return chunkData{
		collider:  world.AddCollider(faces),
		faceCount: len(faces),
	}, true
}

// faceDepthMargin lets region face queries descend a few levels past the
// region grid, so fine geometry inside a coarse region cell still
// produces faces.
const faceDepthMargin = 4
