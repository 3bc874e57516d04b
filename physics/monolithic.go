package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/crossworld/cube/cube"
	"github.com/crossworld/cube/traverse"
)

// MonolithicCollider registers one static face set covering the whole
// world at init. It is the baseline: zero per-frame cost, but the full
// face count is paid up front no matter where bodies are.
type MonolithicCollider struct {
	maxDepth  int
	collider  ColliderID
	active    bool
	faceCount int
	initTime  time.Duration
}

// NewMonolithicCollider builds the baseline strategy. maxDepth bounds
// face resolution the same way it bounds traversal.
func NewMonolithicCollider(maxDepth int) *MonolithicCollider {
	return &MonolithicCollider{maxDepth: maxDepth}
}

func (m *MonolithicCollider) Init(root *cube.Cube, worldSize float32, borders traverse.BorderMaterials, world *World) error {
	if root == nil {
		return ErrNilCube
	}
	if worldSize <= 0 {
		return ErrBadWorldSize
	}
	start := time.Now()

	var faces []Face
	traverse.VisitFaces(root, borders, m.maxDepth, func(f traverse.FaceInfo) {
		faces = append(faces, worldFace(f, worldSize))
	})

	m.collider = world.AddCollider(faces)
	m.active = true
	m.faceCount = len(faces)
	m.initTime = time.Since(start)
	return nil
}

func (m *MonolithicCollider) Update(dynamic []BodyAabb, world *World) {
	// Static collider, nothing to manage.
}

func (m *MonolithicCollider) ResolveCollision(bodyAabb Aabb) mgl32.Vec3 {
	// The world resolves against the registered faces during Step.
	return mgl32.Vec3{}
}

func (m *MonolithicCollider) Metrics() ColliderMetrics {
	active := 0
	if m.active {
		active = 1
	}
	return ColliderMetrics{
		Strategy:        StrategyMonolithic,
		InitTime:        m.initTime,
		ActiveColliders: active,
		TotalFaces:      m.faceCount,
	}
}
