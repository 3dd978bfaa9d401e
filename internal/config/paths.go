// ABOUTME: Centralized path resolution for pipekit directories
// ABOUTME: Respects the PIPEKIT_HOME environment variable for isolation

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv names the environment variable that relocates the pipekit home
const HomeEnv = "PIPEKIT_HOME"

// HomeOverride, when non-empty, wins over PIPEKIT_HOME (set by --home)
var HomeOverride string

// MustHome returns the pipekit home directory.
// Checks --home, then PIPEKIT_HOME, falls back to ~/.pipekit.
// Panics if PIPEKIT_HOME is set but invalid (whitespace-only or relative path).
// Panics if home directory cannot be determined.
func MustHome() string {
	if HomeOverride != "" {
		return HomeOverride
	}
	if home := os.Getenv(HomeEnv); home != "" {
		home = strings.TrimSpace(home)
		if home == "" {
			panic(HomeEnv + " is set but contains only whitespace")
		}
		if !filepath.IsAbs(home) {
			panic(HomeEnv + " must be an absolute path: " + home)
		}
		return home
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic("cannot determine home directory: " + err.Error())
	}
	return filepath.Join(homeDir, ".pipekit")
}

// EventsLogPath returns the JSONL file holding recorded file operations
func EventsLogPath() string {
	return filepath.Join(MustHome(), "events", "operations.log")
}
