package ecs

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// PhysicsWorld owns the Chipmunk space for the ground plane. Chipmunk is 2D, so
// the space's X/Y map onto world X/Z; height above the ground is handled by the
// player controller.
type PhysicsWorld struct {
	space *cp.Space
	width float64
	depth float64

	bodies map[Entity]*cp.Body
	shapes map[Entity]*cp.Shape
}

// NewPhysicsWorld creates a space enclosed by walls spanning [0,width]x[0,depth].
func NewPhysicsWorld(width, depth float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	space.SetDamping(0.2)

	pw := &PhysicsWorld{
		space:  space,
		width:  width,
		depth:  depth,
		bodies: make(map[Entity]*cp.Body),
		shapes: make(map[Entity]*cp.Shape),
	}
	pw.buildWalls()
	return pw
}

// Bounds returns the arena size.
func (pw *PhysicsWorld) Bounds() (width, depth float64) {
	if pw == nil {
		return 0, 0
	}
	return pw.width, pw.depth
}

// EnsureBody creates a circular dynamic body for e at (x, z) if it has none yet.
func (pw *PhysicsWorld) EnsureBody(e Entity, x, z, radius float64) *cp.Body {
	if pw == nil || pw.space == nil || !e.Valid() {
		return nil
	}
	if body, ok := pw.bodies[e]; ok {
		return body
	}
	if radius <= 0 {
		radius = 0.5
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: z})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.8)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies[e] = body
	pw.shapes[e] = shape
	log.Printf("PhysicsWorld: created body for entity %s at (%.2f, %.2f)", e, x, z)
	return body
}

// Body returns the body for e, if any.
func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	if pw == nil {
		return nil, false
	}
	body, ok := pw.bodies[e]
	return body, ok
}

// RemoveBody detaches e's body and shape from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	if shape, ok := pw.shapes[e]; ok {
		pw.space.RemoveShape(shape)
		delete(pw.shapes, e)
	}
	if body, ok := pw.bodies[e]; ok {
		pw.space.RemoveBody(body)
		delete(pw.bodies, e)
	}
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) buildWalls() {
	if pw.width <= 0 || pw.depth <= 0 {
		return
	}
	w, d := pw.width, pw.depth
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w, Y: 0}},
		{a: cp.Vector{X: 0, Y: d}, b: cp.Vector{X: w, Y: d}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: d}},
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: d}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		pw.space.AddShape(shape)
	}
}
