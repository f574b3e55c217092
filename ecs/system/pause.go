package system

import (
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/input"
)

const ActionPause input.Action = "pause"

type PauseSystem struct {
	manager *input.Manager
}

func NewPauseSystem(manager *input.Manager) *PauseSystem {
	return &PauseSystem{manager: manager}
}

func (s *PauseSystem) Update(w *ecs.World) {
	if s == nil || s.manager == nil || w == nil {
		return
	}
	if s.manager.IsJustPressed(ActionPause) {
		w.Events().Push(ecs.Event{Type: ecs.EventPauseToggled})
	}
}
