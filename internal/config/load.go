package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the renderer cannot start without.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Shadow.Resolution <= 0 {
		return fmt.Errorf("shadow resolution %d must be positive", c.Shadow.Resolution)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera planes near=%g far=%g are out of order", c.Camera.Near, c.Camera.Far)
	}
	if len(c.Assets.Skybox) != 6 {
		return fmt.Errorf("skybox needs 6 faces, got %d", len(c.Assets.Skybox))
	}
	for _, name := range SceneModels {
		if c.Assets.Models[name] == "" {
			return fmt.Errorf("no model path for scene object %q", name)
		}
	}
	return nil
}

// AssetPath resolves a path relative to the asset root.
func (c *Config) AssetPath(rel string) string {
	if filepath.IsAbs(rel) || c.Assets.Root == "" {
		return rel
	}
	return filepath.Join(c.Assets.Root, rel)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Farmstead")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Farmstead")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "farmstead")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "farmstead")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
