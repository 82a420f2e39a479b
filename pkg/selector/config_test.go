package selector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/halvorsen/jif/pkg/capture"
)

// setupTestConfig points XDG_CONFIG_HOME at a fresh temp directory so each
// test gets an isolated region store, and forces xdg to re-resolve its
// cached base directories and clears the in-process config cache.
func setupTestConfig(t *testing.T) (string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "jif-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
	xdg.Reload()
	cache().Purge()

	cleanup := func() {
		os.Setenv("XDG_CONFIG_HOME", oldXDG)
		xdg.Reload()
		cache().Purge()
		os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

func TestSaveAndLoadRegion(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	region := &capture.Rect{X: 100, Y: 200, Width: 800, Height: 600}

	if err := SaveRegion("test-region", region); err != nil {
		t.Fatalf("SaveRegion() failed: %v", err)
	}

	loaded, err := LoadRegion("test-region")
	if err != nil {
		t.Fatalf("LoadRegion() failed: %v", err)
	}
	if *loaded != *region {
		t.Errorf("loaded region %+v doesn't match saved region %+v", loaded, region)
	}
}

func TestLoadRegionNotFound(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	if _, err := LoadRegion("nonexistent"); err == nil {
		t.Error("LoadRegion() should fail for nonexistent region")
	}
}

func TestListRegions(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	regions, err := ListRegions()
	if err != nil {
		t.Fatalf("ListRegions() failed: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("expected 0 regions, got %d", len(regions))
	}

	SaveRegion("region1", &capture.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	SaveRegion("region2", &capture.Rect{X: 10, Y: 10, Width: 200, Height: 200})

	regions, err = ListRegions()
	if err != nil {
		t.Fatalf("ListRegions() failed: %v", err)
	}
	if len(regions) != 2 {
		t.Errorf("expected 2 regions, got %d", len(regions))
	}

	names := make(map[string]bool)
	for _, name := range regions {
		names[name] = true
	}
	if !names["region1"] || !names["region2"] {
		t.Errorf("missing expected region names, got: %v", regions)
	}
}

func TestDeleteRegion(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	SaveRegion("test-delete", &capture.Rect{X: 0, Y: 0, Width: 100, Height: 100})

	if _, err := LoadRegion("test-delete"); err != nil {
		t.Fatalf("region should exist before delete: %v", err)
	}

	if err := DeleteRegion("test-delete"); err != nil {
		t.Fatalf("DeleteRegion() failed: %v", err)
	}

	if _, err := LoadRegion("test-delete"); err == nil {
		t.Error("region should not exist after delete")
	}
}

func TestDeleteRegionNotFound(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	if err := DeleteRegion("nonexistent"); err == nil {
		t.Error("DeleteRegion() should fail for nonexistent region")
	}
}

func TestSetAndGetDefaultRegion(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	region := &capture.Rect{X: 50, Y: 50, Width: 300, Height: 300}
	SaveRegion("my-default", region)

	if err := SetDefaultRegion("my-default"); err != nil {
		t.Fatalf("SetDefaultRegion() failed: %v", err)
	}

	defaultRegion, err := GetDefaultRegion()
	if err != nil {
		t.Fatalf("GetDefaultRegion() failed: %v", err)
	}
	if *defaultRegion != *region {
		t.Errorf("default region %+v doesn't match expected %+v", defaultRegion, region)
	}
}

func TestSetDefaultRegionNotFound(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	if err := SetDefaultRegion("nonexistent"); err == nil {
		t.Error("SetDefaultRegion() should fail for nonexistent region")
	}
}

func TestGetDefaultRegionNotSet(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	if _, err := GetDefaultRegion(); err == nil {
		t.Error("GetDefaultRegion() should fail when no default is set")
	}
}

func TestGetRegionInfo(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	SaveRegion("test-info", &capture.Rect{X: 100, Y: 200, Width: 800, Height: 600})

	info, err := GetRegionInfo("test-info")
	if err != nil {
		t.Fatalf("GetRegionInfo() failed: %v", err)
	}

	want := "test-info: 800x600 at (100,200)"
	if info != want {
		t.Errorf("GetRegionInfo() = %q, want %q", info, want)
	}
}

func TestConfigFilePersistence(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	SaveRegion("persistent", &capture.Rect{X: 10, Y: 20, Width: 100, Height: 200})

	configPath := filepath.Join(xdg.ConfigHome, "jif", "regions.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file was not created: %v", err)
	}

	var cfg RegionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("failed to parse config JSON: %v", err)
	}
	if len(cfg.Regions) != 1 {
		t.Fatalf("expected 1 region in config, got %d", len(cfg.Regions))
	}

	saved, ok := cfg.Regions["persistent"]
	if !ok {
		t.Fatal("region 'persistent' not found in config")
	}
	if saved.X != 10 || saved.Y != 20 || saved.Width != 100 || saved.Height != 200 {
		t.Errorf("saved region data incorrect: %+v", saved)
	}
}

func TestMultipleRegionsManagement(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	regions := map[string]*capture.Rect{
		"fullscreen": {X: 0, Y: 0, Width: 1920, Height: 1080},
		"window":     {X: 100, Y: 100, Width: 800, Height: 600},
		"corner":     {X: 0, Y: 0, Width: 400, Height: 400},
	}

	for name, region := range regions {
		if err := SaveRegion(name, region); err != nil {
			t.Fatalf("failed to save region %s: %v", name, err)
		}
	}

	for name, want := range regions {
		got, err := LoadRegion(name)
		if err != nil {
			t.Fatalf("failed to load region %s: %v", name, err)
		}
		if *got != *want {
			t.Errorf("region %s mismatch: got %+v, want %+v", name, got, want)
		}
	}

	list, err := ListRegions()
	if err != nil {
		t.Fatalf("ListRegions() failed: %v", err)
	}
	if len(list) != len(regions) {
		t.Errorf("expected %d regions in list, got %d", len(regions), len(list))
	}
}

func TestOverwriteExistingRegion(t *testing.T) {
	_, cleanup := setupTestConfig(t)
	defer cleanup()

	region1 := &capture.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	region2 := &capture.Rect{X: 50, Y: 50, Width: 200, Height: 200}

	SaveRegion("overwrite-test", region1)
	SaveRegion("overwrite-test", region2)

	loaded, err := LoadRegion("overwrite-test")
	if err != nil {
		t.Fatalf("LoadRegion() failed: %v", err)
	}
	if *loaded != *region2 {
		t.Errorf("expected overwritten region %+v, got %+v", region2, loaded)
	}
}
