package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1914 || cfg.Graphics.Height != 991 {
		t.Errorf("expected 1914x991 window, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Camera.Speed != 0.005 {
		t.Errorf("expected camera speed 0.005, got %f", cfg.Camera.Speed)
	}
	if cfg.Camera.Sensitivity != 0.1 {
		t.Errorf("expected sensitivity 0.1, got %f", cfg.Camera.Sensitivity)
	}
	if cfg.Shadow.Resolution != 2048 {
		t.Errorf("expected shadow resolution 2048, got %d", cfg.Shadow.Resolution)
	}
	if cfg.Fog.Density != 0.2 {
		t.Errorf("expected fog density 0.2, got %f", cfg.Fog.Density)
	}
	if cfg.Light.Direction != [3]float32{0, 1, 1} {
		t.Errorf("unexpected light direction %v", cfg.Light.Direction)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1280
  height: 720
  fullscreen: true
  vsync: false

camera:
  position: [1, 2, 3]
  speed: 0.01

shadow:
  resolution: 4096

fog:
  density: 0.35

assets:
  root: "/data/farm"
  models:
    boat: "models/canoe.glb"

logging:
  level: "debug"
  log_file: "farmstead.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected camera position [1 2 3], got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Speed != 0.01 {
		t.Errorf("expected camera speed 0.01, got %f", cfg.Camera.Speed)
	}
	// Fields absent from the file keep their defaults
	if cfg.Camera.Sensitivity != 0.1 {
		t.Errorf("expected default sensitivity to survive, got %f", cfg.Camera.Sensitivity)
	}
	if cfg.Shadow.Resolution != 4096 {
		t.Errorf("expected shadow resolution 4096, got %d", cfg.Shadow.Resolution)
	}
	if cfg.Fog.Density != 0.35 {
		t.Errorf("expected fog density 0.35, got %f", cfg.Fog.Density)
	}
	if cfg.Assets.Models[ModelBoat] != "models/canoe.glb" {
		t.Errorf("expected boat override, got %s", cfg.Assets.Models[ModelBoat])
	}
	if cfg.Logging.LogFile != "farmstead.log" {
		t.Errorf("expected log file 'farmstead.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "window size"},
		{"zero shadow", func(c *Config) { c.Shadow.Resolution = 0 }, "shadow resolution"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }, "camera planes"},
		{"five faces", func(c *Config) { c.Assets.Skybox = c.Assets.Skybox[:5] }, "6 faces"},
		{"missing model", func(c *Config) { delete(c.Assets.Models, ModelDuck) }, "duck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestAssetPath(t *testing.T) {
	cfg := Default()
	cfg.Assets.Root = "data"

	if got := cfg.AssetPath("skybox/hills_up.tga"); got != filepath.Join("data", "skybox", "hills_up.tga") {
		t.Errorf("unexpected relative resolution %s", got)
	}

	abs := filepath.Join(t.TempDir(), "boat.glb")
	if got := cfg.AssetPath(abs); got != abs {
		t.Errorf("absolute path should pass through, got %s", got)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/srv/farm" },
			verify: func(cfg *Config) {
				if cfg.Assets.Root != "/srv/farm" {
					t.Errorf("expected asset root /srv/farm, got %s", cfg.Assets.Root)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Fog.Density = 0.5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Fog.Density != 0.5 {
		t.Errorf("expected saved fog density 0.5, got %f", loaded.Fog.Density)
	}
}
