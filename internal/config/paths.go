package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigFileName  = "config.toml"
	GlobalConfigDir = ".config/foxhole"
	DefaultDataDir  = ".local/share/foxhole"
	SQLiteFileName  = "foxhole.db"
	jsonKeySuffix   = ".json"
)

// jsonKeys are persisted with a .json extension so editors pick the right mode.
var jsonKeys = map[string]bool{"cards": true}

// Paths provides path resolution for Foxhole data files.
type Paths struct {
	dataDir string // Custom location from config, empty for default
}

// NewPaths creates a new Paths resolver rooted at dataDir.
// An empty dataDir resolves to ~/.local/share/foxhole.
func NewPaths(dataDir string) *Paths {
	return &Paths{dataDir: dataDir}
}

// DataDir returns the directory holding persisted keys.
func (p *Paths) DataDir() string {
	if p.dataDir != "" {
		return p.dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// KeyPath returns the file that holds the value for key.
func (p *Paths) KeyPath(key string) string {
	return filepath.Join(p.DataDir(), KeyFileName(key))
}

// SQLitePath returns the default sqlite database location.
func (p *Paths) SQLitePath() string {
	return filepath.Join(p.DataDir(), SQLiteFileName)
}

// KeyFileName maps a key to its file name inside the data directory.
func KeyFileName(key string) string {
	if jsonKeys[key] {
		return key + jsonKeySuffix
	}
	return key
}

// KeyFromFileName is the inverse of KeyFileName.
func KeyFromFileName(name string) string {
	if trimmed := strings.TrimSuffix(name, jsonKeySuffix); trimmed != name && jsonKeys[trimmed] {
		return trimmed
	}
	return name
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}

// GlobalConfigDirPath returns the directory for global config.
func GlobalConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir)
}
