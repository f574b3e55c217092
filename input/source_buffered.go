package input

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// BufferedSource collects events pushed by a producer and hands them out as one
// Frame per Poll. Pushes may come from any goroutine.
type BufferedSource struct {
	mu    sync.Mutex
	frame Frame
}

func (s *BufferedSource) PushKey(key ebiten.Key, edge Edge) {
	s.mu.Lock()
	s.frame.Keys = append(s.frame.Keys, KeyEvent{Key: key, Edge: edge})
	s.mu.Unlock()
}

func (s *BufferedSource) PushMouseButton(button ebiten.MouseButton, edge Edge) {
	s.mu.Lock()
	s.frame.MouseButtons = append(s.frame.MouseButtons, MouseButtonEvent{Button: button, Edge: edge})
	s.mu.Unlock()
}

func (s *BufferedSource) PushGamepadButton(button ebiten.StandardGamepadButton, edge Edge) {
	s.mu.Lock()
	s.frame.GamepadButtons = append(s.frame.GamepadButtons, GamepadButtonEvent{Button: button, Edge: edge})
	s.mu.Unlock()
}

func (s *BufferedSource) PushAxis(axis ebiten.StandardGamepadAxis, value float64) {
	s.mu.Lock()
	s.frame.GamepadAxes = append(s.frame.GamepadAxes, AxisEvent{Axis: axis, Value: value})
	s.mu.Unlock()
}

// AddMouseDelta accumulates cursor motion for the pending frame.
func (s *BufferedSource) AddMouseDelta(d Vec2) {
	s.mu.Lock()
	s.frame.MouseDelta = s.frame.MouseDelta.Add(d)
	s.mu.Unlock()
}

// Poll returns everything pushed since the previous Poll.
func (s *BufferedSource) Poll() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.frame
	s.frame = Frame{}
	return f
}
