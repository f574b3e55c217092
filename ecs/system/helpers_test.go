package system

import (
	"io"
	"log"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/input"
)

func newTestManager(t *testing.T) (*input.Manager, *input.BufferedSource) {
	t.Helper()
	m := input.NewManager(input.WithLogger(log.New(io.Discard, "", 0)))
	m.RegisterButtonAction(ActionExit, input.Keyboard(ebiten.KeyEscape))
	m.RegisterButtonAction(ActionPause, input.Keyboard(ebiten.KeyP))
	m.RegisterButtonAction(ActionCameraMode, input.Keyboard(ebiten.KeyTab))
	m.RegisterButtonAction("jump", input.Keyboard(ebiten.KeySpace))
	arrows := input.KeyboardEntry(
		input.KeyRelation(ebiten.KeyArrowRight, input.PositiveX),
		input.KeyRelation(ebiten.KeyArrowLeft, input.NegativeX),
		input.KeyRelation(ebiten.KeyArrowUp, input.PositiveY),
		input.KeyRelation(ebiten.KeyArrowDown, input.NegativeY),
	)
	wasd := input.KeyboardEntry(
		input.KeyRelation(ebiten.KeyD, input.PositiveX),
		input.KeyRelation(ebiten.KeyA, input.NegativeX),
		input.KeyRelation(ebiten.KeyW, input.PositiveY),
		input.KeyRelation(ebiten.KeyS, input.NegativeY),
	)
	if err := m.RegisterMotion(MotionCamera, arrows); err != nil {
		t.Fatal(err)
	}
	if err := m.RegisterMotion("movement", wasd); err != nil {
		t.Fatal(err)
	}
	return m, &input.BufferedSource{}
}

// step runs one frame: the input system followed by systems.
func step(w *ecs.World, m *input.Manager, src *input.BufferedSource, systems ...ecs.System) {
	all := append([]ecs.System{NewInputSystem(m, src)}, systems...)
	ecs.NewScheduler(all...).Update(w)
}
