package system

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/common"
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/component"
	"github.com/milk9111/sandbox/input"
)

func newPlayerWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(40, 40))
	e := ecs.CreateEntity(w)
	adds := []error{
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 20, Z: 20}),
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.5}),
		ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 5, JumpSpeed: 6, Gravity: 20}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Movement: "movement", Jump: "jump"}),
	}
	for _, err := range adds {
		if err != nil {
			t.Fatal(err)
		}
	}
	return w, e
}

func TestPlayerMovesWithMotion(t *testing.T) {
	w, e := newPlayerWorld(t)
	m, src := newTestManager(t)
	systems := []ecs.System{NewPlayerControllerSystem(m), NewPhysicsSystem(common.DT)}

	step(w, m, src, systems...)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 20 || tr.Z != 20 {
		t.Fatalf("player should not move without input, got %+v", tr)
	}

	src.PushKey(ebiten.KeyD, input.EdgePressed)
	src.PushKey(ebiten.KeyW, input.EdgePressed)
	for i := 0; i < common.TPS/2; i++ {
		step(w, m, src, systems...)
	}
	if tr.X <= 20 || tr.Z <= 20 {
		t.Fatalf("W+D should move toward +X/+Z, got %+v", tr)
	}
	if math.Abs((tr.X-20)-(tr.Z-20)) > 1e-6 {
		t.Fatalf("diagonal movement should be symmetric, got %+v", tr)
	}
}

func TestPlayerStaysInsideArena(t *testing.T) {
	w, e := newPlayerWorld(t)
	m, src := newTestManager(t)
	systems := []ecs.System{NewPlayerControllerSystem(m), NewPhysicsSystem(common.DT)}

	src.PushKey(ebiten.KeyA, input.EdgePressed)
	for i := 0; i < common.TPS*10; i++ {
		step(w, m, src, systems...)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X < 0 || tr.X > 2 {
		t.Fatalf("player should rest against the west wall, got x=%.3f", tr.X)
	}
}

func TestPlayerJump(t *testing.T) {
	w, e := newPlayerWorld(t)
	m, src := newTestManager(t)
	systems := []ecs.System{NewPlayerControllerSystem(m), NewPhysicsSystem(common.DT)}

	step(w, m, src, systems...)
	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !player.Grounded {
		t.Fatalf("player should settle on the ground")
	}

	src.PushKey(ebiten.KeySpace, input.EdgePressed)
	step(w, m, src, systems...)
	if player.Grounded || tr.Y <= 0 {
		t.Fatalf("jump should lift the player, got y=%.3f grounded=%v", tr.Y, player.Grounded)
	}

	peak := tr.Y
	for i := 0; i < common.TPS*2; i++ {
		step(w, m, src, systems...)
		peak = math.Max(peak, tr.Y)
	}
	if !player.Grounded || tr.Y != 0 {
		t.Fatalf("player should land, got y=%.3f grounded=%v", tr.Y, player.Grounded)
	}
	if peak < 0.5 {
		t.Fatalf("expected a visible hop, peak %.3f", peak)
	}
}
