package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec lists an entity's components by name; each value is decoded
// with DecodeComponentSpec into the matching *ComponentSpec type.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type TransformComponentSpec = VecSpec

type BodyComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Gravity   float64 `yaml:"gravity"`
}

type InputComponentSpec struct {
	Movement string `yaml:"movement"`
	Jump     string `yaml:"jump"`
}

type ScriptComponentSpec struct {
	Path string `yaml:"path"`
}

type CameraComponentSpec struct {
	Pivot VecSpec `yaml:"pivot"`
	Mode  string  `yaml:"mode"`
	Speed float64 `yaml:"speed"`
}
