package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Device identifies the class of physical device a button or mapping entry belongs to.
type Device uint8

const (
	DeviceKeyboard Device = iota + 1
	DeviceMouse
	DeviceGamepad
)

func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceGamepad:
		return "gamepad"
	default:
		return fmt.Sprintf("device(%d)", uint8(d))
	}
}

// Button is a physical button on one device. Two buttons are equal when both
// the device and the device-specific code match, so Button can be used as a map key.
type Button struct {
	device Device
	code   int
}

// Keyboard returns the button for a keyboard key.
func Keyboard(key ebiten.Key) Button {
	return Button{device: DeviceKeyboard, code: int(key)}
}

// Mouse returns the button for a mouse button.
func Mouse(button ebiten.MouseButton) Button {
	return Button{device: DeviceMouse, code: int(button)}
}

// Gamepad returns the button for a standard-layout gamepad button.
func Gamepad(button ebiten.StandardGamepadButton) Button {
	return Button{device: DeviceGamepad, code: int(button)}
}

func (b Button) Device() Device {
	return b.device
}

// Key returns the keyboard key and true when b is a keyboard button.
func (b Button) Key() (ebiten.Key, bool) {
	if b.device != DeviceKeyboard {
		return 0, false
	}
	return ebiten.Key(b.code), true
}

// MouseButton returns the mouse button and true when b is a mouse button.
func (b Button) MouseButton() (ebiten.MouseButton, bool) {
	if b.device != DeviceMouse {
		return 0, false
	}
	return ebiten.MouseButton(b.code), true
}

// GamepadButton returns the gamepad button and true when b is a gamepad button.
func (b Button) GamepadButton() (ebiten.StandardGamepadButton, bool) {
	if b.device != DeviceGamepad {
		return 0, false
	}
	return ebiten.StandardGamepadButton(b.code), true
}

// Valid reports whether b was built by one of the constructors.
func (b Button) Valid() bool {
	switch b.device {
	case DeviceKeyboard, DeviceMouse, DeviceGamepad:
		return true
	default:
		return false
	}
}

// String formats b the way bindings documents spell it, e.g. "key:Space".
func (b Button) String() string {
	switch b.device {
	case DeviceKeyboard:
		return "key:" + ebiten.Key(b.code).String()
	case DeviceMouse:
		return "mouse:" + mouseButtonName(ebiten.MouseButton(b.code))
	case DeviceGamepad:
		return "gamepad:" + gamepadButtonName(ebiten.StandardGamepadButton(b.code))
	default:
		return "invalid"
	}
}
