package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/component"
	"github.com/milk9111/sandbox/input"
	"github.com/milk9111/sandbox/prefabs"
)

type buildContext struct {
	Name string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform": addTransform,
	"body":      addBody,
	"player":    addPlayer,
	"input":     addInput,
	"script":    addScript,
	"camera":    addCamera,
}

var componentBuildOrder = []string{
	"transform",
	"body",
	"player",
	"input",
	"script",
	"camera",
}

// BuildEntity creates an entity from spec. On error nothing is left in the world.
func BuildEntity(w *ecs.World, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	remaining := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			remaining = append(remaining, name)
		}
	}
	if len(remaining) > 0 {
		sort.Strings(remaining)
		return 0, fmt.Errorf("build entity: %q: unknown components %s", spec.Name, strings.Join(remaining, ", "))
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{Name: spec.Name}
	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
	}
	return e, nil
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, Z: spec.Z})
}

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Radius < 0 {
		return fmt.Errorf("negative radius %.2f", spec.Radius)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return err
	}
	player := &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
		Gravity:   spec.Gravity,
	}
	if player.MoveSpeed == 0 {
		player.MoveSpeed = 5
	}
	if player.Gravity == 0 {
		player.Gravity = 20
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), player)
}

func addInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InputComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{
		Movement: input.Motion(spec.Movement),
		Jump:     input.Action(spec.Jump),
	})
}

func addScript(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptComponentSpec](raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(spec.Path) == "" {
		return fmt.Errorf("script for %q has no path", ctx.Name)
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: prefabs.ScriptKey(spec.Path)})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	mode, err := parseCameraMode(spec.Mode)
	if err != nil {
		return err
	}
	speed := spec.Speed
	if speed == 0 {
		speed = 8
	}
	pivot := input.Vec3{X: spec.Pivot.X, Y: spec.Pivot.Y, Z: spec.Pivot.Z}
	return ecs.Add(w, e, component.IsometricCameraComponent.Kind(), &component.IsometricCamera{
		Pivot:  pivot,
		Parked: pivot,
		Pose:   component.PoseFor(mode),
		Mode:   mode,
		Speed:  speed,
	})
}

func parseCameraMode(s string) (component.CameraMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "game":
		return component.CameraModeGame, nil
	case "editor":
		return component.CameraModeEditor, nil
	default:
		return 0, fmt.Errorf("unknown camera mode %q", s)
	}
}
