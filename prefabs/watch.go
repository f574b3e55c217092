package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a changed file.
type ChangeKind int

const (
	ChangeBindings ChangeKind = iota + 1
	ChangeScript
	ChangeScene
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeBindings:
		return "bindings"
	case ChangeScript:
		return "script"
	case ChangeScene:
		return "scene"
	default:
		return "unknown"
	}
}

// Change is a debounced file change the game should react to.
type Change struct {
	Path string
	Kind ChangeKind
}

const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to bindings, scripts and scene specs under the
// watched directories. Events for one path within the debounce window are
// collapsed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	bindings string
	Events   chan Change
	Errors   chan error
	closeCh  chan struct{}
	once     sync.Once
	done     sync.WaitGroup
}

// NewWatcher watches dirs. bindingsPath, if set, is reported as ChangeBindings
// even when it lives outside prefabs/ and its directory is watched too.
func NewWatcher(bindingsPath string, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if bindingsPath != "" {
		bindingsPath = filepath.Clean(bindingsPath)
		dirs = append(dirs, filepath.Dir(bindingsPath))
	}
	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		bindings: bindingsPath,
		Events:   make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	watcher.done.Add(1)
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.done.Wait()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.done.Done()
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := w.classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) classify(path string) (ChangeKind, bool) {
	if w.bindings != "" && filepath.Clean(path) == w.bindings {
		return ChangeBindings, true
	}
	return classifyPath(path)
}

func classifyPath(path string) (ChangeKind, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case isScriptFile(base):
		return ChangeScript, true
	case strings.TrimSuffix(base, filepath.Ext(base)) == "bindings" && (isSpecFile(base) || filepath.Ext(base) == ".toml"):
		return ChangeBindings, true
	case isSpecFile(base):
		return ChangeScene, true
	default:
		return 0, false
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
