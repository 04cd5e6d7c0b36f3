package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Loader loads configuration from JSON files using fs.FS interface
type Loader struct {
	fsys fs.FS
	dir  string // prefix inside fsys
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a new config loader from fs.FS. basePath is the
// directory inside fsys holding the configs; "" or "." means the root.
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{fsys: fsys, dir: basePath}
}

func (l *Loader) load(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, path.Join(l.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadEngine loads engine.json, filling unset fields with defaults
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	cfg := DefaultEngine()
	if err := l.load("engine.json", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine.json: %w", err)
	}
	return cfg, nil
}

// LoadLevel loads a level JSON file
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := l.load("levels/"+name+".json", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Layers.Collision) == 0 {
		return nil, fmt.Errorf("level %s: %w", name, ErrEmptyLevel)
	}
	return &cfg, nil
}
