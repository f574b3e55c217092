package component

import (
	"math"

	"github.com/milk9111/sandbox/input"
)

type CameraMode int

const (
	CameraModeGame CameraMode = iota
	CameraModeEditor
)

func (m CameraMode) String() string {
	switch m {
	case CameraModeGame:
		return "game"
	case CameraModeEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode.
func (m CameraMode) Toggle() CameraMode {
	if m == CameraModeEditor {
		return CameraModeGame
	}
	return CameraModeEditor
}

// CameraPose is the orbit part of a camera: angles in degrees, arm in world units.
type CameraPose struct {
	Yaw   float64
	Pitch float64
	Arm   float64
}

// PoseFor returns the resting pose of a mode.
func PoseFor(m CameraMode) CameraPose {
	if m == CameraModeEditor {
		return CameraPose{Yaw: 0, Pitch: -89, Arm: 30}
	}
	return CameraPose{Yaw: 45, Pitch: -45, Arm: 20}
}

// IsometricCamera orbits Pivot at Pose. Each mode keeps its own pivot: Pivot
// belongs to Mode and Parked to the other mode. Speed is the pivot pan speed in
// world units per second.
type IsometricCamera struct {
	Pivot  input.Vec3
	Parked input.Vec3
	Pose   CameraPose
	Mode   CameraMode
	Speed  float64
}

// SwitchMode toggles the mode and swaps in the other mode's pivot.
func (c *IsometricCamera) SwitchMode() {
	c.Mode = c.Mode.Toggle()
	c.Pivot, c.Parked = c.Parked, c.Pivot
}

// Eye returns the camera position on its orbit around the pivot.
func (c IsometricCamera) Eye() input.Vec3 {
	yaw := c.Pose.Yaw * math.Pi / 180
	pitch := c.Pose.Pitch * math.Pi / 180
	offset := input.Vec3{
		X: math.Cos(pitch) * math.Sin(yaw),
		Y: -math.Sin(pitch),
		Z: math.Cos(pitch) * math.Cos(yaw),
	}
	return c.Pivot.Add(offset.Scale(c.Pose.Arm))
}

var IsometricCameraComponent = NewComponent[IsometricCamera]("isometric_camera")
