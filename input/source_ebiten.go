package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const DefaultStickDeadzone = 0.2

// EbitenSource polls ebiten's device state once per tick and reports the
// transitions as a Frame. Only the first gamepad with a standard layout is read.
type EbitenSource struct {
	// Deadzone snaps stick values with a smaller magnitude to zero.
	Deadzone float64
	// InvertY reports vertical stick axes with up positive, matching the +y
	// convention of keyboard relations. ebiten reports up as negative.
	InvertY bool

	keys     []ebiten.Key
	gamepads []ebiten.GamepadID

	cursorX, cursorY int
	cursorSeen       bool

	gamepad    ebiten.GamepadID
	hasGamepad bool
	axes       map[ebiten.StandardGamepadAxis]float64
}

func NewEbitenSource(deadzone float64) *EbitenSource {
	return &EbitenSource{
		Deadzone: deadzone,
		InvertY:  true,
		axes:     make(map[ebiten.StandardGamepadAxis]float64),
	}
}

// Poll must be called from ebiten's Update.
func (s *EbitenSource) Poll() Frame {
	var f Frame

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		f.Keys = append(f.Keys, KeyEvent{Key: k, Edge: EdgePressed})
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		f.Keys = append(f.Keys, KeyEvent{Key: k, Edge: EdgeReleased})
	}

	for b := ebiten.MouseButton(0); b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			f.MouseButtons = append(f.MouseButtons, MouseButtonEvent{Button: b, Edge: EdgePressed})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			f.MouseButtons = append(f.MouseButtons, MouseButtonEvent{Button: b, Edge: EdgeReleased})
		}
	}

	x, y := ebiten.CursorPosition()
	if s.cursorSeen {
		f.MouseDelta = Vec2{X: float64(x - s.cursorX), Y: float64(y - s.cursorY)}
	}
	s.cursorX, s.cursorY, s.cursorSeen = x, y, true

	s.pollGamepad(&f)
	return f
}

func (s *EbitenSource) pollGamepad(f *Frame) {
	id, ok := s.standardGamepad()
	if !ok {
		if s.hasGamepad {
			s.releaseAxes(f)
			s.hasGamepad = false
		}
		return
	}
	if s.hasGamepad && id != s.gamepad {
		s.releaseAxes(f)
	}
	s.gamepad, s.hasGamepad = id, true

	for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
		if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
			f.GamepadButtons = append(f.GamepadButtons, GamepadButtonEvent{Button: b, Edge: EdgePressed})
		}
		if inpututil.IsStandardGamepadButtonJustReleased(id, b) {
			f.GamepadButtons = append(f.GamepadButtons, GamepadButtonEvent{Button: b, Edge: EdgeReleased})
		}
	}

	s.observeAxes(f, func(a ebiten.StandardGamepadAxis) float64 {
		return ebiten.StandardGamepadAxisValue(id, a)
	})
}

// observeAxes turns one tick of raw stick values into axis events. A stick off
// rest reports its value every tick, so a steady hold keeps overriding earlier
// entries of a motion. A stick coming back to rest reports zero once and then
// stays silent, leaving the motion to other devices.
func (s *EbitenSource) observeAxes(f *Frame, raw func(ebiten.StandardGamepadAxis) float64) {
	for a := ebiten.StandardGamepadAxis(0); a <= ebiten.StandardGamepadAxisMax; a++ {
		v := applyDeadzone(raw(a), s.Deadzone)
		if s.InvertY && isVerticalAxis(a) {
			v = -v
		}
		if v == 0 {
			if _, active := s.axes[a]; !active {
				continue
			}
			delete(s.axes, a)
			v = 0
		} else {
			s.axes[a] = v
		}
		f.GamepadAxes = append(f.GamepadAxes, AxisEvent{Axis: a, Value: v})
	}
}

// releaseAxes settles every active stick back to rest, e.g. on disconnect.
func (s *EbitenSource) releaseAxes(f *Frame) {
	for a := ebiten.StandardGamepadAxis(0); a <= ebiten.StandardGamepadAxisMax; a++ {
		if _, active := s.axes[a]; active {
			f.GamepadAxes = append(f.GamepadAxes, AxisEvent{Axis: a, Value: 0})
			delete(s.axes, a)
		}
	}
}

func (s *EbitenSource) standardGamepad() (ebiten.GamepadID, bool) {
	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	for _, id := range s.gamepads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}

func isVerticalAxis(a ebiten.StandardGamepadAxis) bool {
	return a == ebiten.StandardGamepadAxisLeftStickVertical || a == ebiten.StandardGamepadAxisRightStickVertical
}

func applyDeadzone(v, deadzone float64) float64 {
	if math.Abs(v) < deadzone {
		return 0
	}
	return v
}
