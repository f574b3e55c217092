package component

import "github.com/milk9111/sandbox/input"

// Input names the motion and action that drive an entity.
type Input struct {
	Movement input.Motion
	Jump     input.Action
}

var InputComponent = NewComponent[Input]("input")
