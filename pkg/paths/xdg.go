// Package paths provides XDG-compliant path resolution for grove-prompt.
//
// Resolution order:
// 1. GROVE_HOME (portable root) → $GROVE_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/grove
// 3. Platform defaults → ~/.config/grove, ~/.local/state/grove
package paths

import (
	"os"
	"path/filepath"
)

// ConfigEnv names the variable that points at an explicit config file.
const ConfigEnv = "GROVE_PROMPT_CONFIG"

// configNames are the file names looked up in ConfigDir, in order.
var configNames = []string{"prompt.toml", "prompt.yml", "prompt.yaml"}

func homeOr(groveSub, xdgEnv string, fallback ...string) string {
	if groveHome := os.Getenv("GROVE_HOME"); groveHome != "" {
		return filepath.Join(groveHome, groveSub)
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return xdg
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append([]string{homeDir}, fallback...)...)
	}
	return ""
}

// ConfigDir returns the directory holding prompt.toml.
func ConfigDir() string {
	base := homeOr("config", "XDG_CONFIG_HOME", ".config")
	if base == "" {
		return ""
	}
	return filepath.Join(base, "grove")
}

// StateDir returns the directory for logs.
func StateDir() string {
	base := homeOr("state", "XDG_STATE_HOME", ".local", "state")
	if base == "" {
		return ""
	}
	return filepath.Join(base, "grove")
}

// LogDir returns the directory debug logs are written to.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// DefaultConfigFile is where a new config file would be created.
func DefaultConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configNames[0])
}

// ConfigFile returns the config file to load and whether it exists.
// GROVE_PROMPT_CONFIG wins even when the file is missing, so a typo there is
// reported instead of silently falling back.
func ConfigFile() (string, bool) {
	if explicit := os.Getenv(ConfigEnv); explicit != "" {
		_, err := os.Stat(explicit)
		return explicit, err == nil
	}
	dir := ConfigDir()
	if dir == "" {
		return "", false
	}
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return DefaultConfigFile(), false
}
