package system

import (
	"log"

	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/component"
	"github.com/milk9111/sandbox/input"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	MotionCamera     input.Motion = "camera"
	ActionCameraMode input.Action = "camera_mode"

	cameraTweenSeconds = 0.4
)

type poseTween struct {
	yaw   *gween.Tween
	pitch *gween.Tween
	arm   *gween.Tween
}

// CameraSystem pans the isometric camera pivot with the camera motion and
// eases between the game and editor poses when the mode action fires.
type CameraSystem struct {
	manager   *input.Manager
	dt        float64
	camEntity ecs.Entity
	tween     *poseTween
}

func NewCameraSystem(manager *input.Manager, dt float64) *CameraSystem {
	return &CameraSystem{manager: manager, dt: dt}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || cs.manager == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := ecs.First(w, component.IsometricCameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.tween = nil
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.IsometricCameraComponent.Kind())
	if !ok {
		cs.camEntity = 0
		return
	}

	if cs.manager.IsJustPressed(ActionCameraMode) {
		cam.SwitchMode()
		cs.startTween(cam.Pose, component.PoseFor(cam.Mode))
		log.Printf("camera: switching to %s mode", cam.Mode)
	}

	if cs.tween != nil {
		cs.stepTween(cam)
	}

	if v, ok := cs.manager.LookupMotion(MotionCamera); ok && !v.IsZero() {
		cam.Pivot = cam.Pivot.Add(v.To3D(input.PlaneXZ).Scale(cam.Speed * cs.dt))
	}
}

func (cs *CameraSystem) startTween(from, to component.CameraPose) {
	cs.tween = &poseTween{
		yaw:   gween.New(float32(from.Yaw), float32(to.Yaw), cameraTweenSeconds, ease.InOutQuad),
		pitch: gween.New(float32(from.Pitch), float32(to.Pitch), cameraTweenSeconds, ease.InOutQuad),
		arm:   gween.New(float32(from.Arm), float32(to.Arm), cameraTweenSeconds, ease.InOutQuad),
	}
}

func (cs *CameraSystem) stepTween(cam *component.IsometricCamera) {
	dt := float32(cs.dt)
	yaw, doneYaw := cs.tween.yaw.Update(dt)
	pitch, donePitch := cs.tween.pitch.Update(dt)
	arm, doneArm := cs.tween.arm.Update(dt)
	cam.Pose = component.CameraPose{Yaw: float64(yaw), Pitch: float64(pitch), Arm: float64(arm)}
	if doneYaw && donePitch && doneArm {
		cam.Pose = component.PoseFor(cam.Mode)
		cs.tween = nil
	}
}
