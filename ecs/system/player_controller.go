package system

import (
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/component"
	"github.com/milk9111/sandbox/input"
)

// PlayerControllerSystem turns each player's movement motion into a ground
// velocity and starts a jump on a just-pressed jump action.
type PlayerControllerSystem struct {
	manager *input.Manager
}

func NewPlayerControllerSystem(manager *input.Manager) *PlayerControllerSystem {
	return &PlayerControllerSystem{manager: manager}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || p.manager == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, player *component.Player, in *component.Input, body *component.PhysicsBody) {
			if body.Body != nil {
				if v, ok := p.manager.LookupMotion(in.Movement); ok {
					d := v.To3D(input.PlaneXZ).Scale(player.MoveSpeed)
					vel := body.Body.Velocity()
					vel.X, vel.Y = d.X, d.Z
					body.Body.SetVelocityVector(vel)
				}
			}

			if in.Jump != "" && player.Grounded && p.manager.IsJustPressed(in.Jump) {
				player.VelocityY = player.JumpSpeed
				player.Grounded = false
			}
		})
}
