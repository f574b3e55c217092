package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/component"
	"github.com/milk9111/sandbox/input"
)

// ScriptLoader returns the source of a script by path.
type ScriptLoader func(path string) ([]byte, error)

type scriptRuntime struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

// Scripts define `update := func(input, state) { ... }`; the dispatch below
// calls it once per frame with the input API and a map that survives frames.
const scriptDispatch = `
update(__input, __state)
`

// ScriptSystem runs each entity's tengo script with read-only access to the
// input manager.
type ScriptSystem struct {
	manager *input.Manager
	load    ScriptLoader
	cache   map[ecs.Entity]*scriptRuntime
}

func NewScriptSystem(manager *input.Manager, load ScriptLoader) *ScriptSystem {
	return &ScriptSystem{
		manager: manager,
		load:    load,
		cache:   map[ecs.Entity]*scriptRuntime{},
	}
}

// Invalidate drops compiled scripts loaded from path so the next frame reloads them.
func (s *ScriptSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	for e, rt := range s.cache {
		if rt.path == path {
			delete(s.cache, e)
		}
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || s.manager == nil || s.load == nil {
		return
	}

	for e := range s.cache {
		if !w.IsAlive(e) {
			delete(s.cache, e)
		}
	}

	ecs.ForEach(w, component.ScriptComponent.Kind(), func(e ecs.Entity, sc *component.Script) {
		rt, err := s.runtime(e, sc.Path)
		if err != nil {
			log.Printf("script: entity=%s load %s: %v", e, sc.Path, err)
			return
		}
		if rt.failed {
			return
		}
		if err := rt.run(s.buildInputAPI(w, e)); err != nil {
			// keep the runtime so a broken script logs once instead of every frame
			rt.failed = true
			log.Printf("script: entity=%s run %s: %v", e, sc.Path, err)
		}
	})
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}

	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__input", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &scriptRuntime{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(api *tengo.ImmutableMap) (err error) {
	// tengo panics on some runtime faults, e.g. integer division by zero
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panic: %v", r)
		}
	}()
	if err := rt.compiled.Set("__input", api); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (s *ScriptSystem) buildInputAPI(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	actionQuery := func(name string, query func(input.Action) bool) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			if query(input.Action(objectAsString(args[0]))) {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}}
	}
	values["pressed"] = actionQuery("pressed", s.manager.IsPressed)
	values["just_pressed"] = actionQuery("just_pressed", s.manager.IsJustPressed)
	values["just_released"] = actionQuery("just_released", s.manager.IsJustReleased)

	values["motion"] = &tengo.UserFunction{Name: "motion", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var v input.Vec2
		if len(args) > 0 {
			v, _ = s.manager.LookupMotion(input.Motion(objectAsString(args[0])))
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		log.Printf("script: entity=%s: %s", e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		w.Events().Push(ecs.Event{Type: ecs.EventScript, Data: ecs.ScriptEvent{Entity: e, Name: name}})
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
