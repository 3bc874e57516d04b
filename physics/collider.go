package physics

import (
	"errors"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
	"github.com/crossworld/cube/traverse"
)

var (
	// ErrNilCube is returned by Init when no octree is given.
	ErrNilCube = errors.New("physics: nil world cube")
	// ErrBadWorldSize is returned by Init when the world scale is not positive.
	ErrBadWorldSize = errors.New("physics: world size must be positive")
)

// ColliderMetrics reports what a strategy cost so far.
type ColliderMetrics struct {
	Strategy        string
	InitTime        time.Duration
	UpdateTime      time.Duration
	ActiveColliders int
	TotalFaces      int
}

// BodyAabb pairs a dynamic body with its current bounds for an update
// pass.
type BodyAabb struct {
	ID   BodyID
	Aabb Aabb
}

// WorldCollider is a strategy for colliding dynamic boxes with static
// voxel terrain. The world spans [-worldSize/2, worldSize/2] on every
// axis, centered on the octree's [0,1]³ local space.
type WorldCollider interface {
	// Init binds the strategy to a world octree. Strategies that build
	// static colliders do so here.
	Init(root *cube.Cube, worldSize float32, borders traverse.BorderMaterials, world *World) error

	// Update is called once per frame before integration with the
	// current dynamic body bounds. Strategies may load or unload static
	// colliders based on proximity.
	Update(dynamic []BodyAabb, world *World)

	// ResolveCollision returns the push-out vector for a body against
	// the terrain. Strategies that register static colliders return
	// zero and let the world's own resolution do the work.
	ResolveCollision(bodyAabb Aabb) mgl32.Vec3

	// Metrics reports accumulated cost counters.
	Metrics() ColliderMetrics
}

// NewWorldCollider builds the strategy cfg selects. Unknown strategy
// names fall back to monolithic.
func NewWorldCollider(cfg Config) WorldCollider {
	cfg.applyDefaults()
	switch cfg.Strategy {
	case StrategyChunked:
		return NewChunkedCollider(cfg.ChunkSize, cfg.LoadRadius, cfg.QueryDepth)
	case StrategyHybrid:
		return NewHybridCollider(cfg.QueryDepth)
	default:
		return NewMonolithicCollider(cfg.MaxDepth)
	}
}

// localAabb maps a world-space box into octree-local [0,1]³ space,
// clamped to the unit cube. ok is false when the box lies entirely
// outside the world.
func localAabb(box Aabb, worldSize float32) (min, max mgl32.Vec3, ok bool) {
	half := worldSize / 2
	for i := 0; i < 3; i++ {
		min[i] = (box.Min[i] + half) / worldSize
		max[i] = (box.Max[i] + half) / worldSize
		if max[i] < 0 || min[i] > 1 {
			return min, max, false
		}
		min[i] = math32.Max(min[i], 0)
		max[i] = math32.Min(max[i], 1)
	}
	return min, max, true
}

// worldFace converts an exposed octree face to world space. The face
// center sits on the solid voxel's boundary, half a voxel out from its
// center along the normal.
func worldFace(f traverse.FaceInfo, worldSize float32) Face {
	half := worldSize / 2
	normal := f.Normal.Vec3()
	center := f.Position.
		Add(mgl32.Vec3{f.Size / 2, f.Size / 2, f.Size / 2}).
		Add(normal.Mul(f.Size / 2))
	return Face{
		Center: center.Mul(worldSize).Sub(mgl32.Vec3{half, half, half}),
		Normal: normal,
		Size:   f.Size * worldSize,
	}
}

// boxFacePenetration tests a box against one static face and returns the
// push-out along the face normal, or false when they do not collide.
// The normal points from solid to empty: a +Y ground face has solid
// below it, and a box penetrates when its bottom drops past the face.
func boxFacePenetration(box Aabb, face Face) (mgl32.Vec3, bool) {
	axis := dominantIndex(face.Normal)
	sign := face.Normal[axis]

	var depth float32
	if sign > 0 {
		depth = face.Center[axis] - box.Min[axis]
	} else {
		depth = box.Max[axis] - face.Center[axis]
	}
	if depth <= 0 {
		return mgl32.Vec3{}, false
	}

	// The box must overlap the face's extent in the tangent plane.
	halfSize := face.Size / 2
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if box.Max[i] < face.Center[i]-halfSize || box.Min[i] > face.Center[i]+halfSize {
			return mgl32.Vec3{}, false
		}
	}

	return face.Normal.Mul(depth), true
}

// accumulateCorrection folds one face's push-out into the running
// per-axis maximum. Taking the largest magnitude per axis instead of
// summing avoids over-correction from stacks of coplanar faces.
func accumulateCorrection(correction *mgl32.Vec3, box Aabb, face Face) {
	push, ok := boxFacePenetration(box, face)
	if !ok {
		return
	}
	for i := 0; i < 3; i++ {
		if math32.Abs(push[i]) > math32.Abs(correction[i]) {
			correction[i] = push[i]
		}
	}
}

func dominantIndex(v mgl32.Vec3) int {
	ax, ay, az := math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2])
	if ax > ay && ax > az {
		return 0
	}
	if ay > az {
		return 1
	}
	return 2
}
