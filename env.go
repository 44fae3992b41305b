package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	envConfigDir = "TETRUI_CONFIG_DIR"
	envTheme     = "TETRUI_THEME"
	envSound     = "TETRUI_SOUND"
	envMusicFile = "TETRUI_MUSIC_FILE"
)

func configDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(envConfigDir)); dir != "" {
		return dir, nil
	}
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "tetrui"), nil
}

// applyEnvOverrides lets the environment win over the saved preferences for
// this run only. Unparseable values are ignored.
func applyEnvOverrides(config Config) Config {
	if theme := strings.TrimSpace(os.Getenv(envTheme)); theme != "" {
		if themeIndexByName(theme) >= 0 {
			config.Theme = theme
		} else {
			DebugLogw("unknown theme in environment", "theme", theme)
		}
	}
	if value, ok := os.LookupEnv(envSound); ok {
		if enabled, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			config.Sound = enabled
		}
	}
	if path := strings.TrimSpace(os.Getenv(envMusicFile)); path != "" {
		config.MusicFile = path
	}
	return config
}
