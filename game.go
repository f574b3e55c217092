package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/common"
	"github.com/milk9111/sandbox/ecs"
	"github.com/milk9111/sandbox/ecs/entity"
	"github.com/milk9111/sandbox/ecs/system"
	"github.com/milk9111/sandbox/input"
	"github.com/milk9111/sandbox/prefabs"
	"golang.design/x/clipboard"
)

const actionReload input.Action = "reload"

type Options struct {
	BindingsPath string
	Scene        string
	Watch        bool
	Debug        bool
	Deadzone     float64
}

type Game struct {
	opts Options

	world   *ecs.World
	manager *input.Manager
	source  *input.EbitenSource

	// always runs, even while paused; sim is skipped while paused
	always  *ecs.Scheduler
	sim     *ecs.Scheduler
	scripts *system.ScriptSystem
	render  *system.RenderSystem

	watcher *prefabs.Watcher

	paused       bool
	quit         bool
	pauseUI      *ebitenui.UI
	clipboardOK  bool
	bindingsPath string
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:    opts,
		manager: input.NewManager(),
		source:  input.NewEbitenSource(opts.Deadzone),
	}

	path, err := prefabs.ResolveBindingsPath(opts.BindingsPath)
	if err != nil {
		return nil, err
	}
	g.bindingsPath = path
	if err := g.reloadBindings(); err != nil {
		return nil, err
	}

	g.render = system.NewRenderSystem(g.manager, opts.Debug)
	g.always = ecs.NewScheduler(
		system.NewInputSystem(g.manager, g.source),
		system.NewExitSystem(g.manager),
		system.NewPauseSystem(g.manager),
	)

	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(g.bindingsPath, "prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) reloadBindings() error {
	b, err := prefabs.LoadBindings(g.bindingsPath)
	if err != nil {
		return err
	}
	if err := g.manager.Rebind(b); err != nil {
		return fmt.Errorf("bindings %s: %w", g.bindingsName(), err)
	}
	return nil
}

func (g *Game) bindingsName() string {
	if g.bindingsPath == "" {
		return prefabs.DefaultBindingsFile
	}
	return g.bindingsPath
}

// loadScene builds a fresh world and fresh simulation systems, so no cached
// entity handles survive a reload.
func (g *Game) loadScene() error {
	w := ecs.NewWorld()
	if _, err := entity.LoadScene(w, g.opts.Scene); err != nil {
		return err
	}
	g.world = w
	g.scripts = system.NewScriptSystem(g.manager, prefabs.LoadScript)
	g.sim = ecs.NewScheduler(
		system.NewCameraSystem(g.manager, common.DT),
		system.NewPlayerControllerSystem(g.manager),
		system.NewPhysicsSystem(common.DT),
		g.scripts,
	)
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.applyChanges()

	g.always.Update(g.world)
	events := g.world.Events()
	if events.Has(ecs.EventExitRequested) {
		return ebiten.Termination
	}
	if events.Has(ecs.EventPauseToggled) {
		g.paused = !g.paused
	}
	if g.manager.IsJustPressed(actionReload) {
		g.logReload(g.reloadBindings())
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.sim.Update(g.world)
	if g.opts.Debug {
		for _, evt := range events.Of(ecs.EventScript) {
			if se, ok := evt.Data.(ecs.ScriptEvent); ok {
				log.Printf("script event %q from %s", se.Name, se.Entity)
			}
		}
	}
	return nil
}

// applyChanges drains pending hot-reload notifications without blocking.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("hot reload: %s changed (%s)", c.Path, c.Kind)
			switch c.Kind {
			case prefabs.ChangeBindings:
				g.logReload(g.reloadBindings())
			case prefabs.ChangeScript:
				g.scripts.Invalidate(prefabs.ScriptKey(c.Path))
			case prefabs.ChangeScene:
				if err := g.loadScene(); err != nil {
					log.Printf("hot reload: scene: %v", err)
				}
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("hot reload: %v", err)
		default:
			return
		}
	}
}

func (g *Game) logReload(err error) {
	if err != nil {
		log.Printf("reload bindings: %v (keeping previous bindings)", err)
		return
	}
	log.Printf("reloaded bindings from %s", g.bindingsName())
}

// copyBindings puts the active bindings on the clipboard as YAML.
func (g *Game) copyBindings() {
	if !g.clipboardOK {
		log.Printf("copy bindings: clipboard unavailable")
		return
	}
	data, err := input.EncodeBindings(g.manager.Bindings(), input.FormatYAML)
	if err != nil {
		log.Printf("copy bindings: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
