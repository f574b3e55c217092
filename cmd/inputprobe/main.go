// Command inputprobe drives the input manager from terminal key events and
// shows live action and motion state. It needs no window or gamepad.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/sandbox/ecs/system"
	"github.com/milk9111/sandbox/input"
	"github.com/milk9111/sandbox/prefabs"
)

const sampleRate = beep.SampleRate(44100)

type probe struct {
	screen  tcell.Screen
	manager *input.Manager
	source  *input.BufferedSource
	keys    *keyTracker

	audioInit bool
	lastKey   string
	// idle counts consecutive frames without any input event
	idle int
}

func newProbe(bindingsPath string, hold time.Duration, mute bool) (*probe, error) {
	path, err := prefabs.ResolveBindingsPath(bindingsPath)
	if err != nil {
		return nil, err
	}
	b, err := prefabs.LoadBindings(path)
	if err != nil {
		return nil, err
	}

	// tcell owns the terminal, so rebind logging is dropped
	manager := input.NewManager(input.WithLogger(log.New(io.Discard, "", 0)))
	if err := manager.Rebind(b); err != nil {
		return nil, err
	}

	source := &input.BufferedSource{}
	p := &probe{
		manager: manager,
		source:  source,
		keys:    newKeyTracker(hold, source),
	}
	if !mute {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// non-fatal, the probe runs silently
			log.Printf("audio initialization failed: %v", err)
		} else {
			p.audioInit = true
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	p.screen = screen
	return p, nil
}

func (p *probe) click() {
	if !p.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(30*time.Millisecond), sine))
}

// handleEvent returns false when the probe should quit.
func (p *probe) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if k, ok := translateKey(ev); ok {
			p.keys.press(k, now)
			p.lastKey = k.String()
		} else {
			p.lastKey = ev.Name() + " (unmapped)"
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

// tick advances the manager one frame and returns false once exit fires.
func (p *probe) tick(now time.Time) bool {
	p.keys.expire(now)
	frame := p.source.Poll()
	if frame.Empty() {
		p.idle++
	} else {
		p.idle = 0
	}
	p.manager.Update(frame)

	for _, a := range p.manager.Actions() {
		if p.manager.IsJustPressed(a) {
			p.click()
			break
		}
	}
	return !p.manager.IsJustPressed(system.ActionExit)
}

func (p *probe) draw() {
	p.screen.Clear()
	lines := []string{
		strings.TrimRight(system.InputStatus(p.manager), "\n"),
		fmt.Sprintf("tracked keys %d  last key %s  idle %d frames", p.keys.held(), p.lastKey, p.idle),
		"exit action or Ctrl-C quits",
		"",
	}
	lines = append(lines, strings.Split(strings.TrimRight(system.ActionTable(p.manager), "\n"), "\n")...)
	lines = append(lines, "")
	for _, m := range p.manager.Motions() {
		v, _ := p.manager.LookupMotion(m)
		lines = append(lines, fmt.Sprintf("%-12s (%+.2f, %+.2f)", m, v.X, v.Y))
	}

	style := tcell.StyleDefault
	for y, line := range lines {
		lineStyle := style
		if strings.Contains(line, "down") {
			lineStyle = style.Foreground(tcell.ColorGreen)
		} else if strings.Contains(line, "held") {
			lineStyle = style.Foreground(tcell.ColorYellow)
		}
		for x, r := range line {
			p.screen.SetContent(x, y, r, nil, lineStyle)
		}
	}
	p.screen.Show()
}

func (p *probe) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !p.handleEvent(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			if !p.tick(now) {
				return
			}
			p.draw()
		}
	}
}

func (p *probe) cleanup() {
	if p.audioInit {
		speaker.Close()
	}
	p.screen.Fini()
}

func main() {
	bindings := flag.String("bindings", "", "bindings file (.yaml or .toml)")
	hold := flag.Duration("hold", 500*time.Millisecond, "release a key after this long without a repeat")
	mute := flag.Bool("mute", false, "disable the click on just-pressed actions")
	flag.Parse()

	p, err := newProbe(*bindings, *hold, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inputprobe: %v\n", err)
		os.Exit(1)
	}
	defer p.cleanup()

	p.run()
}
