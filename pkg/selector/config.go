package selector

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/adrg/xdg"
	"github.com/evilsocket/islazy/fs"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/halvorsen/jif/pkg/capture"
	"github.com/halvorsen/jif/pkg/jiferr"
)

// RegionConfig stores saved regions.
type RegionConfig struct {
	Regions map[string]*capture.Rect `json:"regions"`
	Default string                   `json:"default,omitempty"`
}

// configCache holds the single decoded RegionConfig for the lifetime of one
// process, keyed by config path. A CLI invocation calls ListRegions and
// GetRegionInfo back to back for every saved region; without this the
// config file is re-read and re-parsed once per region.
var (
	configCache     *lru.Cache[string, *RegionConfig]
	configCacheOnce sync.Once
)

func cache() *lru.Cache[string, *RegionConfig] {
	configCacheOnce.Do(func() {
		configCache, _ = lru.New[string, *RegionConfig](4)
	})
	return configCache
}

// getConfigPath returns the path to the region store, creating its parent
// directory under the XDG config home (~/.config/jif/regions.json) if
// necessary.
func getConfigPath() (string, error) {
	path, err := xdg.ConfigFile("jif/regions.json")
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// loadConfig loads the region configuration, consulting the in-process
// cache before touching disk.
func loadConfig() (*RegionConfig, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	if cfg, ok := cache().Get(configPath); ok {
		return cfg, nil
	}

	if !fs.Exists(configPath) {
		cfg := &RegionConfig{Regions: make(map[string]*capture.Rect)}
		cache().Add(configPath, cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg RegionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Regions == nil {
		cfg.Regions = make(map[string]*capture.Rect)
	}

	cache().Add(configPath, &cfg)
	return &cfg, nil
}

// saveConfig writes the region configuration and refreshes the cache entry.
func saveConfig(cfg *RegionConfig) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	cache().Add(configPath, cfg)
	return nil
}

// SaveRegion saves a named region.
func SaveRegion(name string, region *capture.Rect) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Regions[name] = region
	return saveConfig(cfg)
}

// LoadRegion loads a named region.
func LoadRegion(name string) (*capture.Rect, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	region, exists := cfg.Regions[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", jiferr.ErrRegionNotFound, name)
	}
	return region, nil
}

// ListRegions returns all saved region names.
func ListRegions() ([]string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cfg.Regions))
	for name := range cfg.Regions {
		names = append(names, name)
	}
	return names, nil
}

// GetRegionInfo returns a one-line human-readable summary of a saved region.
func GetRegionInfo(name string) (string, error) {
	region, err := LoadRegion(name)
	if err != nil {
		return "", err
	}

	x, y, w, h := region.Rounded()
	return fmt.Sprintf("%s: %dx%d at (%d,%d)", name, w, h, x, y), nil
}

// DeleteRegion deletes a named region.
func DeleteRegion(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, exists := cfg.Regions[name]; !exists {
		return fmt.Errorf("%w: %q", jiferr.ErrRegionNotFound, name)
	}
	delete(cfg.Regions, name)
	if cfg.Default == name {
		cfg.Default = ""
	}

	return saveConfig(cfg)
}

// SetDefaultRegion sets the default region to use.
func SetDefaultRegion(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, exists := cfg.Regions[name]; !exists {
		return fmt.Errorf("%w: %q", jiferr.ErrRegionNotFound, name)
	}
	cfg.Default = name

	return saveConfig(cfg)
}

// GetDefaultRegion gets the default region.
func GetDefaultRegion() (*capture.Rect, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Default == "" {
		return nil, fmt.Errorf("no default region set")
	}
	return LoadRegion(cfg.Default)
}
