package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/component"
	"github.com/milk9111/sandbox/input"
	"golang.org/x/image/colornames"
)

const (
	pixelsPerUnit = 24.0
	gridStep      = 2.0
)

// RenderSystem draws the arena through the isometric camera plus a text HUD.
type RenderSystem struct {
	manager *input.Manager
	debug   bool
}

func NewRenderSystem(manager *input.Manager, debug bool) *RenderSystem {
	return &RenderSystem{manager: manager, debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Black)

	camEntity, ok := ecs.First(w, component.IsometricCameraComponent.Kind())
	if !ok {
		ebitenutil.DebugPrint(screen, "no camera")
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.IsometricCameraComponent.Kind())
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	proj := func(p input.Vec3) (float32, float32) {
		x, y := projectIso(*cam, p, sw, sh)
		return float32(x), float32(y)
	}

	if pw := w.PhysicsWorld(); pw != nil {
		width, depth := pw.Bounds()
		for x := 0.0; x <= width; x += gridStep {
			x0, y0 := proj(input.Vec3{X: x})
			x1, y1 := proj(input.Vec3{X: x, Z: depth})
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, colornames.Darkslategray, false)
		}
		for z := 0.0; z <= depth; z += gridStep {
			x0, y0 := proj(input.Vec3{Z: z})
			x1, y1 := proj(input.Vec3{X: width, Z: z})
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, colornames.Darkslategray, false)
		}
	}

	scale := float32(pixelsPerUnit * component.PoseFor(component.CameraModeGame).Arm / math.Max(cam.Pose.Arm, 1))
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
			radius := float32(body.Radius) * scale
			gx, gy := proj(input.Vec3{X: t.X, Z: t.Z})
			vector.FillCircle(screen, gx, gy, radius, color.RGBA{A: 120}, true)
			bx, by := proj(input.Vec3{X: t.X, Y: t.Y + body.Radius, Z: t.Z})
			var fill color.Color = colornames.Steelblue
			if ecs.Has(w, e, component.PlayerComponent.Kind()) {
				fill = colornames.Orange
			}
			vector.FillCircle(screen, bx, by, radius, fill, true)
		})

	px, py := proj(cam.Pivot)
	vector.StrokeLine(screen, px-6, py, px+6, py, 1, colornames.Red, false)
	vector.StrokeLine(screen, px, py-6, px, py+6, 1, colornames.Red, false)

	ebitenutil.DebugPrint(screen, r.hud(cam))
}

func (r *RenderSystem) hud(cam *component.IsometricCamera) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  camera: %s  yaw %.0f pitch %.0f arm %.1f\n",
		ebiten.ActualFPS(), cam.Mode, cam.Pose.Yaw, cam.Pose.Pitch, cam.Pose.Arm)
	if !r.debug || r.manager == nil {
		return b.String()
	}
	b.WriteString(InputStatus(r.manager))
	b.WriteString(ActionTable(r.manager))
	for _, m := range r.manager.Motions() {
		v, _ := r.manager.LookupMotion(m)
		fmt.Fprintf(&b, "%-12s (%+.2f, %+.2f)\n", m, v.X, v.Y)
	}
	return b.String()
}

// InputStatus reports the frame counter and the keys currently held.
func InputStatus(m *input.Manager) string {
	held := "-"
	if keys := m.HeldKeys(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		held = strings.Join(names, " ")
	}
	return fmt.Sprintf("frame %d  keys %s\n", m.Frames(), held)
}

// ActionTable renders one line per action with its edge flags.
func ActionTable(m *input.Manager) string {
	var b strings.Builder
	for _, a := range m.Actions() {
		fmt.Fprintf(&b, "%-12s %s\n", a, actionFlags(m, a))
	}
	return b.String()
}

func actionFlags(m *input.Manager, a input.Action) string {
	flag := func(on bool, s string) string {
		if on {
			return s
		}
		return strings.Repeat(".", len(s))
	}
	return flag(m.IsJustPressed(a), "down") + " " + flag(m.IsPressed(a), "held") + " " + flag(m.IsJustReleased(a), "up")
}

// projectIso maps a world point to screen space with an orthographic view
// along the camera's orbit direction. The pivot lands at the screen center.
func projectIso(cam component.IsometricCamera, p input.Vec3, sw, sh float64) (float64, float64) {
	yaw := cam.Pose.Yaw * math.Pi / 180
	pitch := cam.Pose.Pitch * math.Pi / 180
	forward := input.Vec3{
		X: -math.Cos(pitch) * math.Sin(yaw),
		Y: math.Sin(pitch),
		Z: -math.Cos(pitch) * math.Cos(yaw),
	}
	right := input.Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)}
	up := cross(right, forward)

	rel := p.Add(cam.Pivot.Scale(-1))
	scale := pixelsPerUnit * component.PoseFor(component.CameraModeGame).Arm / math.Max(cam.Pose.Arm, 1)
	return sw/2 + dot(rel, right)*scale, sh/2 - dot(rel, up)*scale
}

func dot(a, b input.Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b input.Vec3) input.Vec3 {
	return input.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
