package entity

import (
	"fmt"

	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/prefabs"
)

// BuildScene attaches an arena-sized physics world to w and spawns every
// entity in spec. A failed entity aborts the build; entities already spawned
// stay in the world.
func BuildScene(w *ecs.World, spec *prefabs.SceneSpec) ([]ecs.Entity, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("build scene: world or spec is nil")
	}
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(spec.Arena.Width, spec.Arena.Depth))

	ents := make([]ecs.Entity, 0, len(spec.Entities))
	for _, es := range spec.Entities {
		e, err := BuildEntity(w, es)
		if err != nil {
			return ents, fmt.Errorf("build scene %s: %w", spec.Name, err)
		}
		ents = append(ents, e)
	}
	return ents, nil
}

// LoadScene loads a scene prefab by file name and builds it into w.
func LoadScene(w *ecs.World, filename string) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadSceneSpec(filename)
	if err != nil {
		return nil, err
	}
	return BuildScene(w, spec)
}
