// Package config defines application configuration and its loading order:
// defaults, then an optional YAML file, then SIGNTUTOR_-prefixed
// environment variables.
package config

import (
	"os"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file for reference letters.
	DBPath string `koanf:"db_path"`

	// StaticDir serves the practice UI when set.
	StaticDir string `koanf:"static_dir"`

	// CameraID selects the capture device.
	CameraID int `koanf:"camera_id"`

	// ActiveFPS is the frame rate while a hand is moving in frame.
	ActiveFPS int `koanf:"active_fps"`

	// IdleFPS is the frame rate while the scene is still.
	IdleFPS int `koanf:"idle_fps"`

	// MotionThreshold is the percentage of changed pixels that counts as
	// motion.
	MotionThreshold float64 `koanf:"motion_threshold"`

	// Mirror un-mirrors landmark x coordinates before scoring, for setups
	// that display the camera feed mirrored.
	Mirror bool `koanf:"mirror"`

	// Calibration is the residual RMS that maps to a score of 50.
	Calibration float64 `koanf:"calibration"`

	// HistorySize bounds the per-session score history.
	HistorySize int `koanf:"history_size"`

	// TrendWindow is the number of recent samples compared against the
	// preceding window to derive the trend.
	TrendWindow int `koanf:"trend_window"`

	// NoiseThreshold is the minimum mean-score change, in points, before
	// the trend leaves steady.
	NoiseThreshold float64 `koanf:"noise_threshold"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:            ":8080",
		DBPath:          defaultDBPath(),
		CameraID:        0,
		ActiveFPS:       30,
		IdleFPS:         5,
		MotionThreshold: 1.0,
		Mirror:          false,
		Calibration:     0.25,
		HistorySize:     10,
		TrendWindow:     3,
		NoiseThreshold:  2.0,
	}
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "signtutor.db"
	}
	return filepath.Join(homeDir, ".signtutor", "signtutor.db")
}
