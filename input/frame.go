package input

import "github.com/hajimehoshi/ebiten/v2"

// Edge is the direction of a button transition.
type Edge uint8

const (
	EdgePressed Edge = iota + 1
	EdgeReleased
)

type KeyEvent struct {
	Key  ebiten.Key
	Edge Edge
}

type MouseButtonEvent struct {
	Button ebiten.MouseButton
	Edge   Edge
}

type GamepadButtonEvent struct {
	Button ebiten.StandardGamepadButton
	Edge   Edge
}

// AxisEvent reports a new raw value, typically in [-1, 1], for a gamepad axis.
type AxisEvent struct {
	Axis  ebiten.StandardGamepadAxis
	Value float64
}

// Frame is every raw device transition observed during one tick.
type Frame struct {
	Keys           []KeyEvent
	MouseButtons   []MouseButtonEvent
	GamepadButtons []GamepadButtonEvent
	GamepadAxes    []AxisEvent
	// MouseDelta is the accumulated cursor motion for the tick, zero when still.
	MouseDelta Vec2
}

// Empty reports whether the frame carries no events at all.
func (f Frame) Empty() bool {
	return len(f.Keys) == 0 && len(f.MouseButtons) == 0 && len(f.GamepadButtons) == 0 &&
		len(f.GamepadAxes) == 0 && f.MouseDelta.IsZero()
}

// Source produces one Frame per tick.
type Source interface {
	Poll() Frame
}
