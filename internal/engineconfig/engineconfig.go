package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// Environment variables that override saved preferences (see env.Load for .env support).
const (
	EnvBackend = "TUTORIAL_BACKEND"
	EnvAudio   = "TUTORIAL_AUDIO"
	EnvLayout  = "TUTORIAL_LAYOUT"
)

// EnginePrefs holds harness preferences (debug overlays, grid, backend, audio). Persisted across runs.
// The scene layout is separate; see tutorial.LoadLayout.
type EnginePrefs struct {
	ShowFPS      bool   `json:"show_fps"`
	ShowMemAlloc bool   `json:"show_memalloc"`
	ShowHelp     bool   `json:"show_help"`
	GridVisible  bool   `json:"grid_visible"`
	Backend      string `json:"backend"`
	Audio        bool   `json:"audio"`
	Layout       string `json:"layout,omitempty"`
	// Font names a TTF/OTF under assets/fonts (or a path) for the window overlays. Empty = raylib default.
	Font string `json:"font,omitempty"`
}

// Default returns default engine preferences (debug overlays off, help and grid on, raylib window, audio on).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		ShowHelp:     true,
		GridVisible:  true,
		Backend:      "raylib",
		Audio:        true,
		Layout:       "config/layout.yaml",
	}
}

// Load reads engine preferences from config/engine.json. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load() (EnginePrefs, error) {
	return LoadFrom(EngineConfigPath)
}

// LoadFrom is Load for an explicit path. Fields missing from the file keep their defaults.
func LoadFrom(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// ApplyEnv overrides p with any of the TUTORIAL_* environment variables that are set.
func ApplyEnv(p *EnginePrefs) {
	if v, ok := os.LookupEnv(EnvBackend); ok && v != "" {
		p.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvAudio); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			p.Audio = b
		}
	}
	if v, ok := os.LookupEnv(EnvLayout); ok && v != "" {
		p.Layout = v
	}
}

// Save writes engine preferences to config/engine.json, creating the config directory if needed.
func Save(p EnginePrefs) error {
	return SaveTo(EngineConfigPath, p)
}

// SaveTo is Save for an explicit path.
func SaveTo(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
