// Package physics resolves collisions between dynamic boxes and static
// voxel terrain. Three interchangeable strategies trade initialization
// cost against per-frame work: a single monolithic collider, proximity
// loaded chunks, and direct octree queries with no static colliders at
// all.
package physics

import "github.com/go-gl/mathgl/mgl32"

// Aabb is an axis-aligned box in world space.
type Aabb struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAabb builds a box from its corners.
func NewAabb(min, max mgl32.Vec3) Aabb {
	return Aabb{Min: min, Max: max}
}

// AabbAround builds a box from a center and half extents.
func AabbAround(center, halfExtents mgl32.Vec3) Aabb {
	return Aabb{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// Center returns the box midpoint.
func (a Aabb) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the box extents per axis.
func (a Aabb) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// Expand grows the box by r on every side.
func (a Aabb) Expand(r float32) Aabb {
	d := mgl32.Vec3{r, r, r}
	return Aabb{Min: a.Min.Sub(d), Max: a.Max.Add(d)}
}

// Translate moves the box by d.
func (a Aabb) Translate(d mgl32.Vec3) Aabb {
	return Aabb{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Intersects reports whether two boxes overlap.
func (a Aabb) Intersects(b Aabb) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] < b.Min[i] || a.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}
