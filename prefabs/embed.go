package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/sandbox/input"
	"github.com/mitchellh/go-homedir"
)

// DefaultBindingsFile is the built-in bindings document.
const DefaultBindingsFile = "bindings.yaml"

// UserBindingsPath is checked for a bindings override when no path is given.
const UserBindingsPath = "~/.config/sandbox/bindings.yaml"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a prefab from prefabs/ on disk, falling back to the embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript reads a script with the same disk-first lookup as Load.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ResolveBindingsPath expands ~ in an explicit path. With no explicit path it
// returns the user override if one exists, or "" for the built-in bindings.
func ResolveBindingsPath(explicit string) (string, error) {
	if explicit != "" {
		p, err := homedir.Expand(explicit)
		if err != nil {
			return "", fmt.Errorf("prefabs: expand %s: %w", explicit, err)
		}
		return p, nil
	}
	p, err := homedir.Expand(UserBindingsPath)
	if err != nil {
		return "", nil
	}
	for _, candidate := range []string{p, strings.TrimSuffix(p, ".yaml") + ".toml"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// LoadBindings decodes the bindings at path, or the built-in bindings when
// path is empty. The format follows the file extension.
func LoadBindings(path string) (*input.Bindings, error) {
	var data []byte
	var err error
	name := path
	if path == "" {
		name = DefaultBindingsFile
		data, err = Load(DefaultBindingsFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}

	format, err := input.FormatFromPath(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	b, err := input.DecodeBindings(data, format)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return b, nil
}

// IsNotExist reports whether err means a prefab was missing both on disk and
// in the embedded set.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
		}
	}
	return "scripts/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}

// ScriptKey normalizes a script path, such as one reported by the watcher, to
// the form stored on script components.
func ScriptKey(path string) string {
	return cleanScriptPath(path)
}
