// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Configuration
	EnvPrefix        = "KILN"   // Environment variable prefix for Viper
	ConfigFileName   = "config" // Config file name for XDG config dir (without extension)
	LocalConfigFile  = "kiln"   // Config file name for current directory (without extension)
	ConfigType       = "yaml"   // Config file type
	DefaultConfigExt = ".yaml"  // Default config file extension
)

// Paths holds all XDG-compliant directory paths
type Paths struct {
	DataDir   string
	ConfigDir string
	LogFile   string
}

var (
	// GlobalPaths is the global paths instance
	GlobalPaths *Paths
)

func init() {
	GlobalPaths = GetPaths()
}

// xdgDir returns the value of env, or the home directory joined with fallback
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// GetPaths returns XDG-compliant directory paths
func GetPaths() *Paths {
	dataDir := filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "kiln")
	configDir := filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "kiln")

	return &Paths{
		DataDir:   dataDir,
		ConfigDir: configDir,
		LogFile:   filepath.Join(dataDir, "debug.log"),
	}
}

// IsRepoMode returns true when a kiln.yaml exists in the current working directory
func IsRepoMode() bool {
	_, err := os.Stat(filepath.Join(".", LocalConfigFile+DefaultConfigExt))
	return err == nil
}

// InitDirs creates all necessary directories
func InitDirs() error {
	for _, dir := range []string{GlobalPaths.ConfigDir, GlobalPaths.DataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
