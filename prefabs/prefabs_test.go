package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/input"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBindingsCompile(t *testing.T) {
	b, err := LoadBindings("")
	require.NoError(t, err)

	m := input.NewManager()
	require.NoError(t, m.Rebind(b))

	for _, a := range []input.Action{"exit", "pause", "jump", "camera_mode", "reload"} {
		assert.NotEmpty(t, m.ActionBindings(a), "action %s", a)
	}
	assert.Equal(t, []input.Motion{"camera", "look", "movement"}, m.Motions())
	assert.Len(t, m.MotionEntries("movement"), 2)
}

func TestDefaultBindingsSteadyStickOverKeyboard(t *testing.T) {
	b, err := LoadBindings("")
	require.NoError(t, err)
	m := input.NewManager()
	require.NoError(t, m.Rebind(b))

	var src input.BufferedSource
	for i := 0; i < 5; i++ {
		src.PushAxis(ebiten.StandardGamepadAxisLeftStickHorizontal, 0.8)
		src.PushAxis(ebiten.StandardGamepadAxisRightStickVertical, 0.5)
		m.Update(src.Poll())
		assert.Equal(t, input.Vec2{X: 0.8}, m.Motion("movement"), "frame %d", i)
		assert.Equal(t, input.Vec2{Y: 0.5}, m.Motion("camera"), "frame %d", i)
	}

	src.PushAxis(ebiten.StandardGamepadAxisLeftStickHorizontal, 0)
	src.PushKey(ebiten.KeyW, input.EdgePressed)
	m.Update(src.Poll())
	assert.Equal(t, input.Vec2{Y: 1}, m.Motion("movement"))
	m.Update(src.Poll())
	assert.Equal(t, input.Vec2{Y: 1}, m.Motion("movement"))
}

func TestLoadBindingsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.toml")
	doc := `
[actions]
jump = ["key:J"]

[[motions.movement]]
device = "keyboard"
relations = [{key = "L", to = "+x"}]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	b, err := LoadBindings(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"key:J"}, b.Actions["jump"])
	require.Len(t, b.Motions["movement"], 1)

	_, err = LoadBindings(filepath.Join(dir, "missing.yaml"))
	assert.True(t, IsNotExist(err))

	bad := filepath.Join(dir, "bindings.ini")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	_, err = LoadBindings(bad)
	assert.ErrorIs(t, err, input.ErrUnknownFormat)
}

func TestResolveBindingsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	p, err := ResolveBindingsPath("")
	require.NoError(t, err)
	assert.Empty(t, p, "no override on disk means built-in bindings")

	p, err = ResolveBindingsPath("~/custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "custom.yaml"), p)

	user := filepath.Join(home, ".config", "sandbox", "bindings.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(user), 0o755))
	require.NoError(t, os.WriteFile(user, []byte(""), 0o644))
	p, err = ResolveBindingsPath("")
	require.NoError(t, err)
	assert.Equal(t, user, p)
}

func TestLoadSceneSpec(t *testing.T) {
	spec, err := LoadSceneSpec("")
	require.NoError(t, err)
	assert.Equal(t, "arena", spec.Name)
	assert.Greater(t, spec.Arena.Width, 0.0)
	require.NotEmpty(t, spec.Entities)

	var player *EntityBuildSpec
	for i := range spec.Entities {
		if spec.Entities[i].Name == "player" {
			player = &spec.Entities[i]
		}
	}
	require.NotNil(t, player)
	ps, err := DecodeComponentSpec[PlayerComponentSpec](player.Components["player"])
	require.NoError(t, err)
	assert.Equal(t, 6.0, ps.MoveSpeed)

	_, err = LoadSceneSpec("nope.yaml")
	assert.True(t, IsNotExist(err))
}

func TestScriptPaths(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"player.tengo", "scripts/player.tengo"},
		{"scripts/player.tengo", "scripts/player.tengo"},
		{"prefabs/scripts/hud.tengo", "scripts/hud.tengo"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanScriptPath(tt.in), tt.in)
	}

	for _, n := range []string{"scripts/player.tengo", "scripts/hud.tengo"} {
		_, err := LoadScript(n)
		assert.NoError(t, err, n)
	}
}

func TestClassifyPath(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/bindings.yaml", ChangeBindings, true},
		{"/home/u/.config/sandbox/bindings.toml", ChangeBindings, true},
		{"prefabs/arena.yaml", ChangeScene, true},
		{"prefabs/scripts/hud.tengo", ChangeScript, true},
		{"prefabs/notes.txt", 0, false},
		{"prefabs/other.toml", 0, false},
	}
	for _, tt := range tests {
		kind, ok := classifyPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.kind, kind, tt.path)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "keys.yaml")

	w, err := NewWatcher(custom, dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(custom, []byte("actions: {}\n"), 0o644))
	select {
	case c := <-w.Events:
		assert.Equal(t, custom, c.Path)
		assert.Equal(t, ChangeBindings, c.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	require.NoError(t, w.Close())
	for range w.Events {
		// drains until Close has closed the channel
	}
}
