package system

import (
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/ecs/component"
	"github.com/milk9111/sandbox/input"
)

func TestProjectIso(t *testing.T) {
	cam := component.IsometricCamera{
		Pivot: input.Vec3{X: 10, Z: 10},
		Pose:  component.PoseFor(component.CameraModeGame),
	}

	cases := []struct {
		name  string
		point input.Vec3
		check func(x, y float64) bool
	}{
		{"pivot_at_center", cam.Pivot, func(x, y float64) bool {
			return math.Abs(x-400) < 1e-9 && math.Abs(y-300) < 1e-9
		}},
		{"height_is_up", input.Vec3{X: 10, Y: 2, Z: 10}, func(x, y float64) bool {
			return math.Abs(x-400) < 1e-9 && y < 300
		}},
		{"right_vector_is_right", input.Vec3{X: 11, Z: 9}, func(x, y float64) bool {
			return x > 400 && math.Abs(y-300) < 1e-9
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := projectIso(cam, c.point, 800, 600)
			if !c.check(x, y) {
				t.Fatalf("unexpected projection (%.3f, %.3f)", x, y)
			}
		})
	}
}

func TestActionTable(t *testing.T) {
	m, src := newTestManager(t)
	src.PushKey(ebiten.KeySpace, input.EdgePressed)
	m.Update(src.Poll())

	lines := map[string]string{}
	for _, line := range strings.Split(ActionTable(m), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines[fields[0]] = line
		}
	}

	// first frame of a press is just pressed, not yet held
	if !strings.HasSuffix(lines["jump"], "down .... ..") {
		t.Fatalf("unexpected jump line %q", lines["jump"])
	}
	if !strings.HasSuffix(lines["exit"], ".... .... ..") {
		t.Fatalf("unexpected exit line %q", lines["exit"])
	}

	m.Update(src.Poll())
	if !strings.Contains(ActionTable(m), "jump         .... held ..") {
		t.Fatalf("expected held jump in\n%s", ActionTable(m))
	}
}

func TestInputStatusListsHeldKeys(t *testing.T) {
	m, src := newTestManager(t)
	if got := InputStatus(m); got != "frame 0  keys -\n" {
		t.Fatalf("InputStatus = %q", got)
	}

	src.PushKey(ebiten.KeyW, input.EdgePressed)
	src.PushKey(ebiten.KeyD, input.EdgePressed)
	m.Update(src.Poll())
	if got := InputStatus(m); got != "frame 1  keys D W\n" {
		t.Fatalf("InputStatus = %q", got)
	}

	src.PushKey(ebiten.KeyW, input.EdgeReleased)
	m.Update(src.Poll())
	if got := InputStatus(m); got != "frame 2  keys D\n" {
		t.Fatalf("InputStatus = %q", got)
	}
}
