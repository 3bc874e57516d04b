package physics

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
	"github.com/crossworld/cube/traverse"
)

// HybridCollider registers no static colliders at all. Every body is
// resolved per frame with a region-bounded face query against the
// octree, so cost scales with body count and size instead of world size.
type HybridCollider struct {
	root       *cube.Cube
	worldSize  float32
	borders    traverse.BorderMaterials
	queryDepth int
	initTime   time.Duration
}

// NewHybridCollider builds the query-per-body strategy. A queryDepth of
// zero picks the depth per body from its size.
func NewHybridCollider(queryDepth int) *HybridCollider {
	return &HybridCollider{queryDepth: queryDepth}
}

func (h *HybridCollider) Init(root *cube.Cube, worldSize float32, borders traverse.BorderMaterials, world *World) error {
	if root == nil {
		return ErrNilCube
	}
	if worldSize <= 0 {
		return ErrBadWorldSize
	}
	start := time.Now()
	h.root = root
	h.worldSize = worldSize
	h.borders = borders
	h.initTime = time.Since(start)
	return nil
}

func (h *HybridCollider) Update(dynamic []BodyAabb, world *World) {
	// No static colliders to manage.
}

func (h *HybridCollider) ResolveCollision(bodyAabb Aabb) mgl32.Vec3 {
	if h.root == nil {
		return mgl32.Vec3{}
	}

	localMin, localMax, ok := localAabb(bodyAabb, h.worldSize)
	if !ok {
		return mgl32.Vec3{}
	}

	depth := h.queryDepth
	if depth <= 0 {
		depth = h.depthForBody(bodyAabb)
	}
	region, ok := traverse.RegionFromLocalAABB(localMin, localMax, depth)
	if !ok {
		return mgl32.Vec3{}
	}

	var correction mgl32.Vec3
	traverse.VisitFacesInRegion(h.root, region, h.borders, depth+faceDepthMargin, func(f traverse.FaceInfo) {
		accumulateCorrection(&correction, bodyAabb, worldFace(f, h.worldSize))
	})
	return correction
}

func (h *HybridCollider) Metrics() ColliderMetrics {
	return ColliderMetrics{
		Strategy: StrategyHybrid,
		InitTime: h.initTime,
	}
}

// depthForBody picks a region depth whose cells are about as large as
// the body, so the query stays bounded regardless of world scale.
func (h *HybridCollider) depthForBody(box Aabb) int {
	size := box.Size()
	span := math32.Max(size[0], math32.Max(size[1], size[2]))
	if span <= 0 {
		return maxQueryDepth
	}
	depth := int(math32.Ceil(math32.Log2(h.worldSize / span)))
	if depth < 1 {
		return 1
	}
	if depth > maxQueryDepth {
		return maxQueryDepth
	}
	return depth
}

const maxQueryDepth = 10
