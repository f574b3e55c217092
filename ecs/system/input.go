package system

import (
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/input"
)

// InputSystem feeds one polled frame into the manager. It must run before any
// system that queries actions or motions.
type InputSystem struct {
	manager *input.Manager
	source  input.Source
}

func NewInputSystem(manager *input.Manager, source input.Source) *InputSystem {
	return &InputSystem{manager: manager, source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.manager == nil || i.source == nil {
		return
	}
	i.manager.Update(i.source.Poll())
}
