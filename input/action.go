package input

import "sort"

// Action names a discrete logical input such as "jump" or "exit".
type Action string

// Phase is the edge state a bound button is in for one action.
type Phase uint8

const (
	PhaseReleased Phase = iota
	PhaseJustPressed
	PhasePressed
	PhaseJustReleased
)

func (p Phase) String() string {
	switch p {
	case PhaseReleased:
		return "released"
	case PhaseJustPressed:
		return "just_pressed"
	case PhasePressed:
		return "pressed"
	case PhaseJustReleased:
		return "just_released"
	default:
		return "unknown"
	}
}

type buttonSet map[Button]struct{}

// buttonState partitions every button bound to one action into four disjoint sets.
// deferred holds just pressed buttons whose release arrived in the same frame.
type buttonState struct {
	released     buttonSet
	justPressed  buttonSet
	pressed      buttonSet
	justReleased buttonSet
	deferred     buttonSet
}

func newButtonState(buttons []Button) *buttonState {
	s := &buttonState{
		released:     make(buttonSet, len(buttons)),
		justPressed:  buttonSet{},
		pressed:      buttonSet{},
		justReleased: buttonSet{},
		deferred:     buttonSet{},
	}
	for _, b := range buttons {
		s.released[b] = struct{}{}
	}
	return s
}

// move transfers b from one of the from sets into to. It reports whether b was found.
func move(b Button, to buttonSet, from ...buttonSet) bool {
	for _, set := range from {
		if _, ok := set[b]; ok {
			delete(set, b)
			to[b] = struct{}{}
			return true
		}
	}
	return false
}

func (s *buttonState) age() {
	for b := range s.justPressed {
		delete(s.justPressed, b)
		s.pressed[b] = struct{}{}
	}
	for b := range s.justReleased {
		delete(s.justReleased, b)
		s.released[b] = struct{}{}
	}
	for b := range s.deferred {
		delete(s.deferred, b)
		move(b, s.justReleased, s.pressed)
	}
}

func (s *buttonState) press(b Button) {
	delete(s.deferred, b)
	// just released covers a release followed by a re-press inside one frame.
	move(b, s.justPressed, s.released, s.justReleased)
}

func (s *buttonState) release(b Button) {
	// a tap inside one frame stays just pressed and is released on the next age
	if has(s.justPressed, b) {
		s.deferred[b] = struct{}{}
		return
	}
	move(b, s.justReleased, s.pressed)
}

func (s *buttonState) phase(b Button) (Phase, bool) {
	switch {
	case has(s.released, b):
		return PhaseReleased, true
	case has(s.justPressed, b):
		return PhaseJustPressed, true
	case has(s.pressed, b):
		return PhasePressed, true
	case has(s.justReleased, b):
		return PhaseJustReleased, true
	default:
		return 0, false
	}
}

func has(set buttonSet, b Button) bool {
	_, ok := set[b]
	return ok
}

// ButtonRegistry maps actions to bound buttons and tracks their edge state.
// It is not safe for concurrent mutation; the owning Manager is its only writer.
type ButtonRegistry struct {
	entries map[Action]*buttonState
}

func NewButtonRegistry() *ButtonRegistry {
	return &ButtonRegistry{entries: make(map[Action]*buttonState)}
}

// Register binds buttons to action with every button released.
// Registering an existing action replaces its bindings.
func (r *ButtonRegistry) Register(action Action, buttons ...Button) {
	r.entries[action] = newButtonState(buttons)
}

// Unregister removes action and reports whether it was registered.
func (r *ButtonRegistry) Unregister(action Action) bool {
	if _, ok := r.entries[action]; !ok {
		return false
	}
	delete(r.entries, action)
	return true
}

func (r *ButtonRegistry) Registered(action Action) bool {
	_, ok := r.entries[action]
	return ok
}

// Actions returns the registered action names in sorted order.
func (r *ButtonRegistry) Actions() []Action {
	out := make([]Action, 0, len(r.entries))
	for a := range r.entries {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bindings returns the buttons bound to action.
func (r *ButtonRegistry) Bindings(action Action) []Button {
	s, ok := r.entries[action]
	if !ok {
		return nil
	}
	out := make([]Button, 0, len(s.released)+len(s.justPressed)+len(s.pressed)+len(s.justReleased))
	for _, set := range []buttonSet{s.released, s.justPressed, s.pressed, s.justReleased} {
		for b := range set {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].device != out[j].device {
			return out[i].device < out[j].device
		}
		return out[i].code < out[j].code
	})
	return out
}

// Phase reports which edge set button currently occupies for action.
func (r *ButtonRegistry) Phase(action Action, button Button) (Phase, bool) {
	s, ok := r.entries[action]
	if !ok {
		return 0, false
	}
	return s.phase(button)
}

// IsPressed reports whether any button of action is held past its first frame.
// Unknown actions are never pressed.
func (r *ButtonRegistry) IsPressed(action Action) bool {
	s, ok := r.entries[action]
	return ok && len(s.pressed) > 0
}

func (r *ButtonRegistry) IsJustPressed(action Action) bool {
	s, ok := r.entries[action]
	return ok && len(s.justPressed) > 0
}

func (r *ButtonRegistry) IsJustReleased(action Action) bool {
	s, ok := r.entries[action]
	return ok && len(s.justReleased) > 0
}

// Age moves last frame's just pressed buttons to pressed and just released
// buttons to released, then releases buttons tapped inside last frame.
// It must run before this frame's events are ingested.
func (r *ButtonRegistry) Age() {
	for _, s := range r.entries {
		s.age()
	}
}

// Press records a press of b for every action bound to it.
func (r *ButtonRegistry) Press(b Button) {
	for _, s := range r.entries {
		s.press(b)
	}
}

// Release records a release of b for every action bound to it.
func (r *ButtonRegistry) Release(b Button) {
	for _, s := range r.entries {
		s.release(b)
	}
}
