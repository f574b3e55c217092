package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/common"
	"github.com/milk9111/sandbox/input"
	"github.com/milk9111/sandbox/prefabs"
)

func main() {
	bindings := flag.String("bindings", "", "bindings file (.yaml or .toml); defaults to "+prefabs.UserBindingsPath+" if present")
	scene := flag.String("scene", "", "scene prefab in prefabs/ (default arena.yaml)")
	watch := flag.Bool("watch", false, "hot reload bindings, scripts and scenes on change")
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	deadzone := flag.Float64("deadzone", input.DefaultStickDeadzone, "gamepad stick deadzone")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("sandbox")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		BindingsPath: *bindings,
		Scene:        *scene,
		Watch:        *watch,
		Debug:        *debug,
		Deadzone:     *deadzone,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
