package physics

import "github.com/go-gl/mathgl/mgl32"

// Face is one static terrain face in world space: a thin axis-aligned
// quad whose normal points away from the solid side.
type Face struct {
	Center mgl32.Vec3
	Normal mgl32.Vec3
	Size   float32
}

// BodyID identifies a dynamic body in a World.
type BodyID int

// ColliderID identifies a registered static face set.
type ColliderID int

// Body is a dynamic box integrated by the world.
type Body struct {
	Pos         mgl32.Vec3
	Vel         mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// Aabb returns the body's current bounds.
func (b *Body) Aabb() Aabb {
	return AabbAround(b.Pos, b.HalfExtents)
}

// World integrates dynamic boxes under gravity and pushes them out of
// registered static faces. It stands in for a full physics engine: the
// collision strategies only need body integration, static collider
// registration and position corrections.
type World struct {
	Gravity mgl32.Vec3

	bodies    map[BodyID]*Body
	colliders map[ColliderID][]Face
	nextBody  BodyID
	nextColl  ColliderID
}

// NewWorld returns a world with standard gravity and no bodies.
func NewWorld() *World {
	return &World{
		Gravity:   mgl32.Vec3{0, -9.81, 0},
		bodies:    make(map[BodyID]*Body),
		colliders: make(map[ColliderID][]Face),
	}
}

// AddBody registers a dynamic box and returns its handle.
func (w *World) AddBody(pos, halfExtents mgl32.Vec3) BodyID {
	id := w.nextBody
	w.nextBody++
	w.bodies[id] = &Body{Pos: pos, HalfExtents: halfExtents}
	return id
}

// Body returns the body for id, or nil.
func (w *World) Body(id BodyID) *Body {
	return w.bodies[id]
}

// Bodies calls f for every dynamic body.
func (w *World) Bodies(f func(BodyID, *Body)) {
	for id, b := range w.bodies {
		f(id, b)
	}
}

// AddCollider registers a static face set and returns its handle.
func (w *World) AddCollider(faces []Face) ColliderID {
	id := w.nextColl
	w.nextColl++
	w.colliders[id] = faces
	return id
}

// RemoveCollider drops a static face set.
func (w *World) RemoveCollider(id ColliderID) {
	delete(w.colliders, id)
}

// ColliderCount returns the number of registered static face sets.
func (w *World) ColliderCount() int {
	return len(w.colliders)
}

// Step advances every body by dt with semi-implicit Euler, then pushes
// bodies out of registered static faces.
func (w *World) Step(dt float32) {
	for id, b := range w.bodies {
		b.Vel = b.Vel.Add(w.Gravity.Mul(dt))
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))

		if len(w.colliders) > 0 {
			w.ApplyCorrection(id, w.resolveStatic(b.Aabb()))
		}
	}
}

// ApplyCorrection moves a body by the correction vector and kills the
// velocity component opposing it, so a pushed-out body does not re-enter
// the surface on the next step.
func (w *World) ApplyCorrection(id BodyID, correction mgl32.Vec3) {
	b := w.bodies[id]
	if b == nil {
		return
	}
	b.Pos = b.Pos.Add(correction)
	for i := 0; i < 3; i++ {
		if correction[i] > 0 && b.Vel[i] < 0 {
			b.Vel[i] = 0
		} else if correction[i] < 0 && b.Vel[i] > 0 {
			b.Vel[i] = 0
		}
	}
}

// resolveStatic computes the push-out vector for a box against every
// registered face, keeping the largest correction per axis.
func (w *World) resolveStatic(box Aabb) mgl32.Vec3 {
	var correction mgl32.Vec3
	for _, faces := range w.colliders {
		for _, f := range faces {
			accumulateCorrection(&correction, box, f)
		}
	}
	return correction
}
