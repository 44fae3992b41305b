package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Theme         string `json:"theme"`
	Sound         bool   `json:"sound"`
	Music         bool   `json:"music"`
	Volume        int    `json:"volume"`
	Shadow        bool   `json:"shadow"`
	Animations    bool   `json:"animations"`
	HardDropTrace bool   `json:"hard_drop_trace"`
	Scale         int    `json:"scale"`
	MusicFile     string `json:"music_file,omitempty"`
}

func defaultConfig() Config {
	return Config{
		Theme:         themes[0].Name,
		Sound:         true,
		Music:         true,
		Volume:        70,
		Shadow:        true,
		Animations:    true,
		HardDropTrace: true,
		Scale:         1,
	}
}

func (c Config) normalized() Config {
	if themeIndexByName(c.Theme) < 0 {
		c.Theme = themes[0].Name
	}
	c.Scale = clampScale(c.Scale)
	c.Volume = clampVolumePercent(c.Volume)
	return c
}

// loadConfig returns the saved preferences, or the defaults when none have
// been saved yet.
func loadConfig() (Config, error) {
	config := defaultConfig()
	path, err := configPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return config.normalized(), nil
}

func saveConfig(config Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, "config.json"), nil
}
