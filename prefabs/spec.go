package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultScene is loaded when no scene is named on the command line.
const DefaultScene = "arena.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ArenaSpec struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
}

// SceneSpec is a named arena plus the entities spawned into it.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Arena    ArenaSpec         `yaml:"arena"`
	Entities []EntityBuildSpec `yaml:"entities"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	if filename == "" {
		filename = DefaultScene
	}
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Arena.Width <= 0 || spec.Arena.Depth <= 0 {
		return nil, fmt.Errorf("prefabs: scene %s: arena must have a positive size", filename)
	}
	return &spec, nil
}
