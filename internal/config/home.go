package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the a11y-check home directory.
const HomeEnv = "A11Y_CHECK_HOME"

// Home returns the a11y-check home directory
// Priority order:
//  1. A11Y_CHECK_HOME environment variable (if set)
//  2. ~/.a11y-check
//  3. .a11y-check in the current working directory (fallback)
func Home() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	if userHome, err := os.UserHomeDir(); err == nil && userHome != "" {
		return filepath.Join(userHome, ".a11y-check"), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, ".a11y-check"), nil
}

// DefaultPath returns the location of config.yaml in the home directory.
func DefaultPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}
