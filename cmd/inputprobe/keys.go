package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/input"
)

var specialKeys = map[tcell.Key]ebiten.Key{
	tcell.KeyUp:         ebiten.KeyArrowUp,
	tcell.KeyDown:       ebiten.KeyArrowDown,
	tcell.KeyLeft:       ebiten.KeyArrowLeft,
	tcell.KeyRight:      ebiten.KeyArrowRight,
	tcell.KeyEnter:      ebiten.KeyEnter,
	tcell.KeyTab:        ebiten.KeyTab,
	tcell.KeyEscape:     ebiten.KeyEscape,
	tcell.KeyBackspace:  ebiten.KeyBackspace,
	tcell.KeyBackspace2: ebiten.KeyBackspace,
	tcell.KeyDelete:     ebiten.KeyDelete,
	tcell.KeyHome:       ebiten.KeyHome,
	tcell.KeyEnd:        ebiten.KeyEnd,
	tcell.KeyPgUp:       ebiten.KeyPageUp,
	tcell.KeyPgDn:       ebiten.KeyPageDown,
}

// translateKey maps a terminal key event to the ebiten key it stands for.
// Terminals fold shift into the rune, so 'A' and 'a' both map to KeyA.
func translateKey(ev *tcell.EventKey) (ebiten.Key, bool) {
	if k, ok := specialKeys[ev.Key()]; ok {
		return k, true
	}
	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		return parseKey(fmt.Sprintf("F%d", ev.Key()-tcell.KeyF1+1))
	}
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}

	r := ev.Rune()
	switch {
	case r == ' ':
		return ebiten.KeySpace, true
	case r <= unicode.MaxASCII && unicode.IsLetter(r):
		return parseKey(strings.ToUpper(string(r)))
	case r >= '0' && r <= '9':
		return parseKey("Digit" + string(r))
	}
	return 0, false
}

func parseKey(name string) (ebiten.Key, bool) {
	k, err := input.ParseKey(name)
	return k, err == nil
}

// keyTracker turns terminal key events, which only report presses and
// auto-repeats, into press/release edges. A key counts as released once no
// repeat has arrived for hold.
type keyTracker struct {
	hold     time.Duration
	lastSeen map[ebiten.Key]time.Time
	source   *input.BufferedSource
}

func newKeyTracker(hold time.Duration, source *input.BufferedSource) *keyTracker {
	return &keyTracker{
		hold:     hold,
		lastSeen: make(map[ebiten.Key]time.Time),
		source:   source,
	}
}

func (t *keyTracker) press(k ebiten.Key, now time.Time) {
	if _, held := t.lastSeen[k]; !held {
		t.source.PushKey(k, input.EdgePressed)
	}
	t.lastSeen[k] = now
}

// expire releases keys that have not repeated within the hold window.
func (t *keyTracker) expire(now time.Time) {
	expired := make([]ebiten.Key, 0)
	for k, seen := range t.lastSeen {
		if now.Sub(seen) >= t.hold {
			expired = append(expired, k)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	for _, k := range expired {
		delete(t.lastSeen, k)
		t.source.PushKey(k, input.EdgeReleased)
	}
}

func (t *keyTracker) held() int {
	return len(t.lastSeen)
}
