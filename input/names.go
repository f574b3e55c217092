package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	ErrUnknownButton = errors.New("input: unknown button")
	ErrUnknownAxis   = errors.New("input: unknown axis")
)

var mouseButtonNames = map[ebiten.MouseButton]string{
	ebiten.MouseButtonLeft:   "Left",
	ebiten.MouseButtonMiddle: "Middle",
	ebiten.MouseButtonRight:  "Right",
	ebiten.MouseButton3:      "Back",
	ebiten.MouseButton4:      "Forward",
}

var gamepadButtonNames = map[ebiten.StandardGamepadButton]string{
	ebiten.StandardGamepadButtonRightBottom:      "RightBottom",
	ebiten.StandardGamepadButtonRightRight:       "RightRight",
	ebiten.StandardGamepadButtonRightLeft:        "RightLeft",
	ebiten.StandardGamepadButtonRightTop:         "RightTop",
	ebiten.StandardGamepadButtonFrontTopLeft:     "FrontTopLeft",
	ebiten.StandardGamepadButtonFrontTopRight:    "FrontTopRight",
	ebiten.StandardGamepadButtonFrontBottomLeft:  "FrontBottomLeft",
	ebiten.StandardGamepadButtonFrontBottomRight: "FrontBottomRight",
	ebiten.StandardGamepadButtonCenterLeft:       "CenterLeft",
	ebiten.StandardGamepadButtonCenterRight:      "CenterRight",
	ebiten.StandardGamepadButtonLeftStick:        "LeftStick",
	ebiten.StandardGamepadButtonRightStick:       "RightStick",
	ebiten.StandardGamepadButtonLeftTop:          "LeftTop",
	ebiten.StandardGamepadButtonLeftBottom:       "LeftBottom",
	ebiten.StandardGamepadButtonLeftLeft:         "LeftLeft",
	ebiten.StandardGamepadButtonLeftRight:        "LeftRight",
	ebiten.StandardGamepadButtonCenterCenter:     "CenterCenter",
}

var gamepadAxisNames = map[ebiten.StandardGamepadAxis]string{
	ebiten.StandardGamepadAxisLeftStickHorizontal:  "LeftStickHorizontal",
	ebiten.StandardGamepadAxisLeftStickVertical:    "LeftStickVertical",
	ebiten.StandardGamepadAxisRightStickHorizontal: "RightStickHorizontal",
	ebiten.StandardGamepadAxisRightStickVertical:   "RightStickVertical",
}

// lookup tables keyed by lower-cased name
var (
	keysByName          = map[string]ebiten.Key{}
	mouseButtonsByName  = map[string]ebiten.MouseButton{}
	gamepadButtonByName = map[string]ebiten.StandardGamepadButton{}
	gamepadAxisByName   = map[string]ebiten.StandardGamepadAxis{}
)

func init() {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		if name == "" {
			continue
		}
		keysByName[strings.ToLower(name)] = k
	}
	for b, name := range mouseButtonNames {
		mouseButtonsByName[strings.ToLower(name)] = b
	}
	for b, name := range gamepadButtonNames {
		gamepadButtonByName[strings.ToLower(name)] = b
	}
	for a, name := range gamepadAxisNames {
		gamepadAxisByName[strings.ToLower(name)] = a
	}
}

func mouseButtonName(b ebiten.MouseButton) string {
	if name, ok := mouseButtonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Button%d", int(b))
}

func gamepadButtonName(b ebiten.StandardGamepadButton) string {
	if name, ok := gamepadButtonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Button%d", int(b))
}

func gamepadAxisName(a ebiten.StandardGamepadAxis) string {
	if name, ok := gamepadAxisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Axis%d", int(a))
}

// ParseKey resolves an ebiten key name ("Space", "ArrowUp", "W") case-insensitively.
func ParseKey(name string) (ebiten.Key, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: key %q", ErrUnknownButton, name)
	}
	return k, nil
}

// ParseGamepadAxis resolves a standard gamepad axis name such as "LeftStickHorizontal".
func ParseGamepadAxis(name string) (ebiten.StandardGamepadAxis, error) {
	a, ok := gamepadAxisByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
	}
	return a, nil
}

// ParseButton parses the "device:name" form produced by Button.String.
// Accepted devices are key, mouse and gamepad.
func ParseButton(s string) (Button, error) {
	device, name, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || name == "" {
		return Button{}, fmt.Errorf("%w: %q", ErrUnknownButton, s)
	}
	lname := strings.ToLower(strings.TrimSpace(name))

	switch strings.ToLower(device) {
	case "key", "keyboard":
		k, err := ParseKey(name)
		if err != nil {
			return Button{}, err
		}
		return Keyboard(k), nil
	case "mouse":
		b, ok := mouseButtonsByName[lname]
		if !ok {
			return Button{}, fmt.Errorf("%w: mouse %q", ErrUnknownButton, name)
		}
		return Mouse(b), nil
	case "gamepad", "pad":
		b, ok := gamepadButtonByName[lname]
		if !ok {
			return Button{}, fmt.Errorf("%w: gamepad %q", ErrUnknownButton, name)
		}
		return Gamepad(b), nil
	default:
		return Button{}, fmt.Errorf("%w: device %q", ErrUnknownButton, device)
	}
}
