package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultPath is the prefs file, relative to the process working directory.
const DefaultPath = "config/arplace.json"

// PathEnv names the environment variable that overrides DefaultPath.
const PathEnv = "ARPLACE_CONFIG"

// Prefs holds the app preferences. Persisted across runs; placed objects are not.
type Prefs struct {
	ShowFPS            bool   `json:"show_fps"`
	GridVisible        bool   `json:"grid_visible"`
	PlacementTimeoutMS int    `json:"placement_timeout_ms"`
	AssetLatencyMS     int    `json:"asset_latency_ms,omitempty"`
	CatalogPath        string `json:"catalog_path,omitempty"`
	AssetsDir          string `json:"assets_dir,omitempty"`
	Font               string `json:"font,omitempty"`
	LogPath            string `json:"log_path"`
}

// Default returns the default prefs: grid on, FPS off, 10s placement timeout, embedded catalog
// and models.
func Default() Prefs {
	return Prefs{
		GridVisible:        true,
		PlacementTimeoutMS: 10000,
		LogPath:            "logs/arplace.txt",
	}
}

// Path returns the prefs path, honouring PathEnv.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// PlacementTimeout returns the placement timeout as a duration (default when unset).
func (p Prefs) PlacementTimeout() time.Duration {
	if p.PlacementTimeoutMS <= 0 {
		return time.Duration(Default().PlacementTimeoutMS) * time.Millisecond
	}
	return time.Duration(p.PlacementTimeoutMS) * time.Millisecond
}

// AssetLatency returns the simulated per-asset load latency.
func (p Prefs) AssetLatency() time.Duration {
	if p.AssetLatencyMS <= 0 {
		return 0
	}
	return time.Duration(p.AssetLatencyMS) * time.Millisecond
}

// Load reads prefs from path. Fields missing from the file keep their defaults. A missing file
// is not an error; an unreadable or invalid one returns Default() and the error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return p, nil
}

// Save writes prefs to path, creating its directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
