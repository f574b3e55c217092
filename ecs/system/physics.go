package system

import (
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/component"
)

// PhysicsSystem steps the ground-plane space, copies body positions back to
// transforms and integrates each player's jump height.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	return &PhysicsSystem{dt: dt}
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
			if body.Body == nil {
				body.Body = pw.EnsureBody(e, t.X, t.Z, body.Radius)
			}
		})

	pw.Step(p.dt)

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			pos := body.Body.Position()
			t.X = pos.X
			t.Z = pos.Y
		})

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, player *component.Player, t *component.Transform) {
			if player.Grounded && player.VelocityY <= 0 {
				t.Y = 0
				return
			}
			player.VelocityY -= player.Gravity * p.dt
			t.Y += player.VelocityY * p.dt
			if t.Y <= 0 {
				t.Y = 0
				player.VelocityY = 0
				player.Grounded = true
			}
		})
}
