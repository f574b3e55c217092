package input

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietManager() *Manager {
	return NewManager(WithLogger(log.New(io.Discard, "", 0)))
}

func keyFrame(key ebiten.Key, edge Edge) Frame {
	return Frame{Keys: []KeyEvent{{Key: key, Edge: edge}}}
}

func TestManagerLeftActionScenario(t *testing.T) {
	m := quietManager()
	m.RegisterButtonAction("left", Keyboard(ebiten.KeyA), Mouse(ebiten.MouseButtonLeft))

	frames := []struct {
		name         string
		frame        Frame
		justPressed  bool
		pressed      bool
		justReleased bool
	}{
		{"press_a", keyFrame(ebiten.KeyA, EdgePressed), true, false, false},
		{"hold_a", Frame{}, false, true, false},
		{"release_a", keyFrame(ebiten.KeyA, EdgeReleased), false, false, true},
		{"idle", Frame{}, false, false, false},
	}

	for _, f := range frames {
		t.Run(f.name, func(t *testing.T) {
			m.Update(f.frame)
			assert.Equal(t, f.justPressed, m.IsJustPressed("left"), "just pressed")
			assert.Equal(t, f.pressed, m.IsPressed("left"), "pressed")
			assert.Equal(t, f.justReleased, m.IsJustReleased("left"), "just released")
		})
	}
	assert.Equal(t, uint64(4), m.Frames())
}

func TestManagerMouseAndGamepadButtons(t *testing.T) {
	m := quietManager()
	m.RegisterButtonAction("fire", Mouse(ebiten.MouseButtonLeft), Gamepad(ebiten.StandardGamepadButtonFrontBottomRight))

	m.Update(Frame{MouseButtons: []MouseButtonEvent{{Button: ebiten.MouseButtonLeft, Edge: EdgePressed}}})
	assert.True(t, m.IsJustPressed("fire"))

	m.Update(Frame{GamepadButtons: []GamepadButtonEvent{{Button: ebiten.StandardGamepadButtonFrontBottomRight, Edge: EdgePressed}}})
	assert.True(t, m.IsPressed("fire"), "mouse button aged into pressed")
	assert.True(t, m.IsJustPressed("fire"), "gamepad trigger just pressed")

	m.Update(Frame{
		MouseButtons:   []MouseButtonEvent{{Button: ebiten.MouseButtonLeft, Edge: EdgeReleased}},
		GamepadButtons: []GamepadButtonEvent{{Button: ebiten.StandardGamepadButtonFrontBottomRight, Edge: EdgeReleased}},
	})
	assert.False(t, m.IsPressed("fire"))
	assert.True(t, m.IsJustReleased("fire"))
}

func TestManagerTapInsideOneFrame(t *testing.T) {
	m := quietManager()
	m.RegisterButtonAction("jump", Keyboard(ebiten.KeySpace))

	m.Update(Frame{Keys: []KeyEvent{
		{Key: ebiten.KeySpace, Edge: EdgePressed},
		{Key: ebiten.KeySpace, Edge: EdgeReleased},
	}})
	assert.True(t, m.IsJustPressed("jump"))
	assert.False(t, m.IsJustReleased("jump"))
	assert.Empty(t, m.HeldKeys())

	m.Update(Frame{})
	assert.False(t, m.IsJustPressed("jump"))
	assert.False(t, m.IsPressed("jump"))
	assert.True(t, m.IsJustReleased("jump"))

	m.Update(Frame{})
	assert.False(t, m.IsJustReleased("jump"))
}

func TestManagerMovementScenario(t *testing.T) {
	m := quietManager()
	require.NoError(t, m.RegisterMotion("movement", wasd()))

	m.Update(Frame{Keys: []KeyEvent{{Key: ebiten.KeyW, Edge: EdgePressed}, {Key: ebiten.KeyD, Edge: EdgePressed}}})
	assert.Equal(t, Vec2{X: 1, Y: 1}, m.Motion("movement"))

	m.Update(Frame{})
	assert.Equal(t, Vec2{X: 1, Y: 1}, m.Motion("movement"), "held keys keep contributing")
	assert.ElementsMatch(t, []ebiten.Key{ebiten.KeyD, ebiten.KeyW}, m.HeldKeys())

	m.Update(Frame{Keys: []KeyEvent{{Key: ebiten.KeyW, Edge: EdgeReleased}, {Key: ebiten.KeyD, Edge: EdgeReleased}}})
	assert.Equal(t, Vec2{}, m.Motion("movement"))
	assert.Empty(t, m.HeldKeys())

	assert.Equal(t, Vec3{}, m.Motion3D("movement", PlaneXZ))
}

func TestManagerMotion3D(t *testing.T) {
	m := quietManager()
	require.NoError(t, m.RegisterMotion("camera", wasd()))
	m.Update(keyFrame(ebiten.KeyW, EdgePressed))

	assert.Equal(t, Vec3{Z: 1}, m.Motion3D("camera", PlaneXZ))
	assert.Equal(t, Vec3{Y: 1}, m.Motion3D("camera", PlaneXY))
}

func TestManagerUnknownQueries(t *testing.T) {
	m := quietManager()
	assert.False(t, m.IsPressed("exit"))
	_, ok := m.LookupMotion("movement")
	assert.False(t, ok)
	assert.Panics(t, func() { m.Motion("movement") })
}

func TestManagerUnregister(t *testing.T) {
	m := quietManager()
	m.RegisterButtonAction("jump", Keyboard(ebiten.KeySpace))
	require.NoError(t, m.RegisterMotion("movement", wasd()))

	assert.True(t, m.UnregisterAction("jump"))
	assert.True(t, m.UnregisterMotion("movement"))
	assert.False(t, m.UnregisterAction("jump"))

	m.Update(keyFrame(ebiten.KeySpace, EdgePressed))
	assert.False(t, m.IsJustPressed("jump"))
	assert.Empty(t, m.Actions())
	assert.Empty(t, m.Motions())
}

func TestManagerRebindLogs(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(WithLogger(log.New(&buf, "", 0)))
	m.RegisterButtonAction("jump", Keyboard(ebiten.KeySpace))
	assert.Empty(t, buf.String())

	m.RegisterButtonAction("jump", Keyboard(ebiten.KeyW))
	assert.Contains(t, buf.String(), `[input] rebinding action "jump"`)
}

func TestBufferedSourceFeedsManager(t *testing.T) {
	var src BufferedSource
	m := quietManager()
	m.RegisterButtonAction("jump", Keyboard(ebiten.KeySpace), Gamepad(ebiten.StandardGamepadButtonRightBottom))
	require.NoError(t, m.RegisterMotion("look", MouseEntry(2)))
	require.NoError(t, m.RegisterMotion("stick", GamepadEntry(AxisRelation(ebiten.StandardGamepadAxisRightStickVertical, OutputY))))

	src.PushKey(ebiten.KeySpace, EdgePressed)
	src.AddMouseDelta(Vec2{X: 1})
	src.AddMouseDelta(Vec2{X: 3, Y: 2})
	src.PushAxis(ebiten.StandardGamepadAxisRightStickVertical, -1)
	m.Update(src.Poll())

	assert.True(t, m.IsJustPressed("jump"))
	assert.Equal(t, Vec2{X: 2, Y: 1}, m.Motion("look"))
	assert.Equal(t, Vec2{Y: -1}, m.Motion("stick"))

	f := src.Poll()
	assert.True(t, f.Empty(), "poll drains the buffer")

	src.PushGamepadButton(ebiten.StandardGamepadButtonRightBottom, EdgeReleased)
	src.PushKey(ebiten.KeySpace, EdgeReleased)
	m.Update(src.Poll())
	assert.True(t, m.IsJustReleased("jump"))
}
