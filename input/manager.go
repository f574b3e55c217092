package input

import (
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Manager owns the action and motion registries. Update is its only mutator and
// must run once per tick before any system queries it.
type Manager struct {
	buttons *ButtonRegistry
	motions *MotionRegistry

	held   map[ebiten.Key]struct{}
	frames uint64
	logger *log.Logger
}

type Option func(*Manager)

// WithLogger sends registration and rebinding messages to l instead of the
// standard logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		buttons: NewButtonRegistry(),
		motions: NewMotionRegistry(),
		held:    make(map[ebiten.Key]struct{}),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterButtonAction binds buttons to action, replacing any earlier binding.
func (m *Manager) RegisterButtonAction(action Action, buttons ...Button) {
	if m.buttons.Registered(action) {
		m.logger.Printf("[input] rebinding action %q to %v", action, buttons)
	}
	m.buttons.Register(action, buttons...)
}

// RegisterMotion declares motion with entries applied in registration order.
func (m *Manager) RegisterMotion(motion Motion, entries ...Entry) error {
	return m.motions.Register(motion, entries...)
}

func (m *Manager) UnregisterAction(action Action) bool {
	return m.buttons.Unregister(action)
}

func (m *Manager) UnregisterMotion(motion Motion) bool {
	return m.motions.Unregister(motion)
}

func (m *Manager) IsPressed(action Action) bool {
	return m.buttons.IsPressed(action)
}

func (m *Manager) IsJustPressed(action Action) bool {
	return m.buttons.IsJustPressed(action)
}

func (m *Manager) IsJustReleased(action Action) bool {
	return m.buttons.IsJustReleased(action)
}

// Phase reports the edge state of button within action.
func (m *Manager) Phase(action Action, button Button) (Phase, bool) {
	return m.buttons.Phase(action, button)
}

// Motion returns the resolved vector for motion and panics if it is unknown.
func (m *Manager) Motion(motion Motion) Vec2 {
	return m.motions.Get(motion)
}

// Motion3D returns the resolved vector for motion projected onto plane.
func (m *Manager) Motion3D(motion Motion, plane Plane) Vec3 {
	return m.motions.Get3D(motion, plane)
}

// LookupMotion is the non-panicking form of Motion.
func (m *Manager) LookupMotion(motion Motion) (Vec2, bool) {
	return m.motions.Lookup(motion)
}

func (m *Manager) Actions() []Action {
	return m.buttons.Actions()
}

func (m *Manager) ActionBindings(action Action) []Button {
	return m.buttons.Bindings(action)
}

func (m *Manager) Motions() []Motion {
	return m.motions.Motions()
}

func (m *Manager) MotionEntries(motion Motion) []Entry {
	return m.motions.Entries(motion)
}

// Frames returns how many frames Update has processed.
func (m *Manager) Frames() uint64 {
	return m.frames
}

// HeldKeys returns the keyboard keys currently down, sorted.
func (m *Manager) HeldKeys() []ebiten.Key {
	out := make([]ebiten.Key, 0, len(m.held))
	for k := range m.held {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Update advances one frame: age button edges, ingest frame's events, then
// resolve every motion.
func (m *Manager) Update(frame Frame) {
	m.buttons.Age()

	for _, ev := range frame.Keys {
		b := Keyboard(ev.Key)
		switch ev.Edge {
		case EdgePressed:
			m.held[ev.Key] = struct{}{}
			m.buttons.Press(b)
		case EdgeReleased:
			delete(m.held, ev.Key)
			m.buttons.Release(b)
		}
	}
	for _, ev := range frame.MouseButtons {
		m.ingest(Mouse(ev.Button), ev.Edge)
	}
	for _, ev := range frame.GamepadButtons {
		m.ingest(Gamepad(ev.Button), ev.Edge)
	}

	m.motions.Resolve(frame, m.held)
	m.frames++
}

func (m *Manager) ingest(b Button, edge Edge) {
	switch edge {
	case EdgePressed:
		m.buttons.Press(b)
	case EdgeReleased:
		m.buttons.Release(b)
	}
}
