package input

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxRelations is the most relations a single mapping entry may hold.
const MaxRelations = 4

var ErrInvalidEntry = errors.New("input: invalid mapping entry")

// Motion names a continuous 2D logical input such as "movement".
type Motion string

// Output selects the motion axis a gamepad axis writes to.
type Output uint8

const (
	OutputX Output = iota + 1
	OutputY
)

// Direction is the unit contribution a held key adds to a motion.
type Direction uint8

const (
	PositiveX Direction = iota + 1
	NegativeX
	PositiveY
	NegativeY
)

func (d Direction) unit() Vec2 {
	switch d {
	case PositiveX:
		return Vec2{X: 1}
	case NegativeX:
		return Vec2{X: -1}
	case PositiveY:
		return Vec2{Y: 1}
	case NegativeY:
		return Vec2{Y: -1}
	default:
		panic(fmt.Sprintf("input: unknown direction %d", d))
	}
}

type relationKind uint8

const (
	relationAxis relationKind = iota + 1
	relationKey
	relationMouseDelta
)

// Relation binds one physical signal to a contribution on a motion.
// Build relations with AxisRelation, KeyRelation or MouseDeltaRelation.
type Relation struct {
	kind        relationKind
	axis        ebiten.StandardGamepadAxis
	output      Output
	key         ebiten.Key
	direction   Direction
	sensitivity float64
}

// AxisRelation passes the raw value of a gamepad axis through to one motion axis.
func AxisRelation(axis ebiten.StandardGamepadAxis, out Output) Relation {
	return Relation{kind: relationAxis, axis: axis, output: out}
}

// KeyRelation adds a unit step in dir while key is held.
func KeyRelation(key ebiten.Key, dir Direction) Relation {
	return Relation{kind: relationKey, key: key, direction: dir}
}

// MouseDeltaRelation sets the motion to the frame's mouse delta divided by sensitivity.
func MouseDeltaRelation(sensitivity float64) Relation {
	return Relation{kind: relationMouseDelta, sensitivity: sensitivity}
}

func (r Relation) String() string {
	switch r.kind {
	case relationAxis:
		out := "x"
		if r.output == OutputY {
			out = "y"
		}
		return gamepadAxisName(r.axis) + "->" + out
	case relationKey:
		return r.key.String() + "->" + directionName(r.direction)
	case relationMouseDelta:
		return fmt.Sprintf("delta/%g", r.sensitivity)
	default:
		return "invalid"
	}
}

func directionName(d Direction) string {
	switch d {
	case PositiveX:
		return "+x"
	case NegativeX:
		return "-x"
	case PositiveY:
		return "+y"
	case NegativeY:
		return "-y"
	default:
		return "?"
	}
}

// Entry maps one device kind to contributions toward a motion.
type Entry struct {
	Device    Device
	Relations []Relation
}

func GamepadEntry(relations ...Relation) Entry {
	return Entry{Device: DeviceGamepad, Relations: relations}
}

func KeyboardEntry(relations ...Relation) Entry {
	return Entry{Device: DeviceKeyboard, Relations: relations}
}

func MouseEntry(sensitivity float64) Entry {
	return Entry{Device: DeviceMouse, Relations: []Relation{MouseDeltaRelation(sensitivity)}}
}

// Validate checks that every relation matches the entry's device.
func (e Entry) Validate() error {
	if len(e.Relations) == 0 || len(e.Relations) > MaxRelations {
		return fmt.Errorf("%w: %s entry has %d relations, want 1..%d", ErrInvalidEntry, e.Device, len(e.Relations), MaxRelations)
	}

	var want relationKind
	switch e.Device {
	case DeviceGamepad:
		want = relationAxis
	case DeviceKeyboard:
		want = relationKey
	case DeviceMouse:
		want = relationMouseDelta
		if len(e.Relations) != 1 {
			return fmt.Errorf("%w: mouse entry needs exactly one relation, has %d", ErrInvalidEntry, len(e.Relations))
		}
	default:
		return fmt.Errorf("%w: unknown device %s", ErrInvalidEntry, e.Device)
	}

	for i, r := range e.Relations {
		if r.kind != want {
			return fmt.Errorf("%w: %s entry relation %d is %s", ErrInvalidEntry, e.Device, i, r)
		}
		switch r.kind {
		case relationAxis:
			if r.output != OutputX && r.output != OutputY {
				return fmt.Errorf("%w: relation %d has no output axis", ErrInvalidEntry, i)
			}
		case relationKey:
			if r.direction < PositiveX || r.direction > NegativeY {
				return fmt.Errorf("%w: relation %d has no direction", ErrInvalidEntry, i)
			}
		case relationMouseDelta:
			if r.sensitivity <= 0 {
				return fmt.Errorf("%w: mouse sensitivity must be positive, got %g", ErrInvalidEntry, r.sensitivity)
			}
		}
	}
	return nil
}

type motionState struct {
	entries []Entry
	value   Vec2
}

// MotionRegistry maps motions to ordered mapping entries and holds each motion's
// resolved vector for the current frame.
type MotionRegistry struct {
	entries map[Motion]*motionState
}

func NewMotionRegistry() *MotionRegistry {
	return &MotionRegistry{entries: make(map[Motion]*motionState)}
}

// Register declares motion with entries applied in the given order and a zero vector.
// Registering an existing motion replaces it.
func (r *MotionRegistry) Register(motion Motion, entries ...Entry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("motion %q entry %d: %w", motion, i, err)
		}
	}
	copied := make([]Entry, len(entries))
	for i, e := range entries {
		copied[i] = Entry{Device: e.Device, Relations: append([]Relation(nil), e.Relations...)}
	}
	r.entries[motion] = &motionState{entries: copied}
	return nil
}

// Unregister removes motion and reports whether it was registered.
func (r *MotionRegistry) Unregister(motion Motion) bool {
	if _, ok := r.entries[motion]; !ok {
		return false
	}
	delete(r.entries, motion)
	return true
}

// Motions returns the registered motion names in sorted order.
func (r *MotionRegistry) Motions() []Motion {
	out := make([]Motion, 0, len(r.entries))
	for m := range r.entries {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Entries returns a copy of the mapping entries registered for motion.
func (r *MotionRegistry) Entries(motion Motion) []Entry {
	s, ok := r.entries[motion]
	if !ok {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

// Lookup returns the resolved vector for motion and whether it is registered.
func (r *MotionRegistry) Lookup(motion Motion) (Vec2, bool) {
	s, ok := r.entries[motion]
	if !ok {
		return Vec2{}, false
	}
	return s.value, true
}

// Get returns the resolved vector for motion. Querying a motion that was never
// registered is a configuration bug and panics.
func (r *MotionRegistry) Get(motion Motion) Vec2 {
	v, ok := r.Lookup(motion)
	if !ok {
		panic(fmt.Sprintf("input: unknown motion %q", motion))
	}
	return v
}

// Get3D returns Get(motion) projected onto plane.
func (r *MotionRegistry) Get3D(motion Motion, plane Plane) Vec3 {
	return r.Get(motion).To3D(plane)
}

// Resolve recomputes every motion from this frame's events and the set of held keys.
func (r *MotionRegistry) Resolve(frame Frame, held map[ebiten.Key]struct{}) {
	for _, s := range r.entries {
		for _, e := range s.entries {
			s.value = resolveEntry(e, s.value, frame, held)
		}
	}
}

func resolveEntry(e Entry, v Vec2, frame Frame, held map[ebiten.Key]struct{}) Vec2 {
	switch e.Device {
	case DeviceGamepad:
		for _, ev := range frame.GamepadAxes {
			for _, rel := range e.Relations {
				if rel.kind != relationAxis {
					panic(fmt.Sprintf("input: gamepad entry holds %s relation", rel))
				}
				if rel.axis != ev.Axis {
					continue
				}
				if rel.output == OutputX {
					v.X = ev.Value
				} else {
					v.Y = ev.Value
				}
			}
		}
		return v
	case DeviceKeyboard:
		var sum Vec2
		for _, rel := range e.Relations {
			if rel.kind != relationKey {
				panic(fmt.Sprintf("input: keyboard entry holds %s relation", rel))
			}
			if _, ok := held[rel.key]; ok {
				sum = sum.Add(rel.direction.unit())
			}
		}
		return sum
	case DeviceMouse:
		if len(e.Relations) != 1 || e.Relations[0].kind != relationMouseDelta {
			panic(fmt.Sprintf("input: mouse entry needs exactly one delta relation, has %v", e.Relations))
		}
		if frame.MouseDelta.IsZero() {
			return Vec2{}
		}
		return frame.MouseDelta.Scale(1 / e.Relations[0].sensitivity)
	default:
		panic(fmt.Sprintf("input: unknown device %s", e.Device))
	}
}
