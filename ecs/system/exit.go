package system

import (
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/input"
)

const ActionExit input.Action = "exit"

// ExitSystem requests shutdown when the exit action is just pressed.
type ExitSystem struct {
	manager *input.Manager
	action  input.Action
}

func NewExitSystem(manager *input.Manager) *ExitSystem {
	return &ExitSystem{manager: manager, action: ActionExit}
}

func (s *ExitSystem) Update(w *ecs.World) {
	if s == nil || s.manager == nil || w == nil {
		return
	}
	if s.manager.IsJustPressed(s.action) {
		w.Events().Push(ecs.Event{Type: ecs.EventExitRequested})
	}
}
