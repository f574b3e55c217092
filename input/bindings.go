package input

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("input: unknown bindings format")

// Format is the encoding of a bindings document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Bindings is the on-disk description of every action and motion.
type Bindings struct {
	Actions map[string][]string    `yaml:"actions" toml:"actions"`
	Motions map[string][]EntrySpec `yaml:"motions" toml:"motions"`
}

type EntrySpec struct {
	Device    string         `yaml:"device" toml:"device"`
	Relations []RelationSpec `yaml:"relations" toml:"relations"`
}

// RelationSpec uses Key+To for keyboard entries, Axis+To for gamepad entries and
// Sensitivity for mouse entries.
type RelationSpec struct {
	Key         string  `yaml:"key,omitempty" toml:"key,omitempty"`
	Axis        string  `yaml:"axis,omitempty" toml:"axis,omitempty"`
	To          string  `yaml:"to,omitempty" toml:"to,omitempty"`
	Sensitivity float64 `yaml:"sensitivity,omitempty" toml:"sensitivity,omitempty"`
}

// DecodeBindings parses a bindings document.
func DecodeBindings(data []byte, format Format) (*Bindings, error) {
	var b Bindings
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &b)
	case FormatTOML:
		err = toml.Unmarshal(data, &b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("input: decode bindings: %w", err)
	}
	return &b, nil
}

// EncodeBindings serializes b in format.
func EncodeBindings(b *Bindings, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(b)
	case FormatTOML:
		return toml.Marshal(b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

type compiledBindings struct {
	actions map[Action][]Button
	motions map[Motion][]Entry
}

func (b *Bindings) compile() (*compiledBindings, error) {
	c := &compiledBindings{
		actions: make(map[Action][]Button, len(b.Actions)),
		motions: make(map[Motion][]Entry, len(b.Motions)),
	}
	for name, specs := range b.Actions {
		buttons := make([]Button, 0, len(specs))
		for _, s := range specs {
			btn, err := ParseButton(s)
			if err != nil {
				return nil, fmt.Errorf("input: action %q: %w", name, err)
			}
			buttons = append(buttons, btn)
		}
		c.actions[Action(name)] = buttons
	}
	for name, specs := range b.Motions {
		entries := make([]Entry, 0, len(specs))
		for i, s := range specs {
			e, err := s.entry()
			if err != nil {
				return nil, fmt.Errorf("input: motion %q entry %d: %w", name, i, err)
			}
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("input: motion %q entry %d: %w", name, i, err)
			}
			entries = append(entries, e)
		}
		c.motions[Motion(name)] = entries
	}
	return c, nil
}

func (s EntrySpec) entry() (Entry, error) {
	switch strings.ToLower(strings.TrimSpace(s.Device)) {
	case "keyboard", "key":
		rels := make([]Relation, 0, len(s.Relations))
		for _, r := range s.Relations {
			key, err := ParseKey(r.Key)
			if err != nil {
				return Entry{}, err
			}
			dir, err := parseDirection(r.To)
			if err != nil {
				return Entry{}, err
			}
			rels = append(rels, KeyRelation(key, dir))
		}
		return KeyboardEntry(rels...), nil
	case "gamepad", "pad":
		rels := make([]Relation, 0, len(s.Relations))
		for _, r := range s.Relations {
			axis, err := ParseGamepadAxis(r.Axis)
			if err != nil {
				return Entry{}, err
			}
			out, err := parseOutput(r.To)
			if err != nil {
				return Entry{}, err
			}
			rels = append(rels, AxisRelation(axis, out))
		}
		return GamepadEntry(rels...), nil
	case "mouse":
		rels := make([]Relation, 0, len(s.Relations))
		for _, r := range s.Relations {
			rels = append(rels, MouseDeltaRelation(r.Sensitivity))
		}
		return Entry{Device: DeviceMouse, Relations: rels}, nil
	default:
		return Entry{}, fmt.Errorf("%w: unknown device %q", ErrInvalidEntry, s.Device)
	}
}

func parseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+x", "x":
		return PositiveX, nil
	case "-x":
		return NegativeX, nil
	case "+y", "y":
		return PositiveY, nil
	case "-y":
		return NegativeY, nil
	default:
		return 0, fmt.Errorf("%w: direction %q", ErrInvalidEntry, s)
	}
}

func parseOutput(s string) (Output, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "+x":
		return OutputX, nil
	case "y", "+y":
		return OutputY, nil
	default:
		return 0, fmt.Errorf("%w: output axis %q", ErrInvalidEntry, s)
	}
}

// Rebind replaces every action and motion with those described by b. Nothing
// changes when b fails to compile.
func (m *Manager) Rebind(b *Bindings) error {
	c, err := b.compile()
	if err != nil {
		return err
	}

	m.buttons = NewButtonRegistry()
	m.motions = NewMotionRegistry()
	for action, buttons := range c.actions {
		m.buttons.Register(action, buttons...)
	}
	for motion, entries := range c.motions {
		if err := m.motions.Register(motion, entries...); err != nil {
			// compile already validated every entry
			panic("input: rebind: " + err.Error())
		}
	}
	// keys still held keep driving keyboard motions; button edges restart from released
	m.logger.Printf("[input] rebound %d actions, %d motions", len(c.actions), len(c.motions))
	return nil
}

// Bindings describes the manager's current registrations as a document that
// Rebind accepts.
func (m *Manager) Bindings() *Bindings {
	b := &Bindings{
		Actions: make(map[string][]string),
		Motions: make(map[string][]EntrySpec),
	}
	for _, a := range m.buttons.Actions() {
		buttons := m.buttons.Bindings(a)
		names := make([]string, 0, len(buttons))
		for _, btn := range buttons {
			names = append(names, btn.String())
		}
		sort.Strings(names)
		b.Actions[string(a)] = names
	}
	for _, mo := range m.motions.Motions() {
		entries := m.motions.Entries(mo)
		specs := make([]EntrySpec, 0, len(entries))
		for _, e := range entries {
			specs = append(specs, entrySpec(e))
		}
		b.Motions[string(mo)] = specs
	}
	return b
}

func entrySpec(e Entry) EntrySpec {
	s := EntrySpec{Device: e.Device.String()}
	for _, r := range e.Relations {
		switch r.kind {
		case relationKey:
			s.Relations = append(s.Relations, RelationSpec{Key: r.key.String(), To: directionName(r.direction)})
		case relationAxis:
			to := "x"
			if r.output == OutputY {
				to = "y"
			}
			s.Relations = append(s.Relations, RelationSpec{Axis: gamepadAxisName(r.axis), To: to})
		case relationMouseDelta:
			s.Relations = append(s.Relations, RelationSpec{Sensitivity: r.sensitivity})
		}
	}
	return s
}
