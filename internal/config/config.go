// Package config holds the configuration for the Mudra gesture control system.
//
// Configuration is an explicit value passed into constructors; packages never
// read ambient global settings. Values are persisted as YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the default configuration file name.
const DefaultFilename = "mudra.yaml"

// DefaultFilePermissions restricts the config file to the owning user.
const DefaultFilePermissions = 0o600

// Camera holds capture settings.
type Camera struct {
	// DeviceID selects the capture device.
	DeviceID int `yaml:"device_id" json:"device_id"`
	// Width and Height set the capture resolution. The gesture distance
	// thresholds below are calibrated against this resolution; changing it
	// requires re-tuning them.
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	// FPS is the capture rate in active mode.
	FPS int `yaml:"fps" json:"fps"`
	// Mirror flips frames horizontally so the preview behaves like a mirror.
	Mirror bool `yaml:"mirror" json:"mirror"`
}

// Gestures holds classification thresholds, all in pixels at the configured
// camera resolution.
type Gestures struct {
	// OKDistance is the maximum thumb-tip to index-tip distance for the OK sign.
	OKDistance float64 `yaml:"ok_distance" json:"ok_distance"`
	// SpreadDistance is the minimum tip-to-tip distance between adjacent
	// fingers for the hand to count as splayed (unmute).
	SpreadDistance float64 `yaml:"spread_distance" json:"spread_distance"`
	// VolumeMinDistance and VolumeMaxDistance bound the pinch distance that
	// maps onto the 0-100 level range.
	VolumeMinDistance float64 `yaml:"volume_min_distance" json:"volume_min_distance"`
	VolumeMaxDistance float64 `yaml:"volume_max_distance" json:"volume_max_distance"`
	// Cooldown is the minimum time between two firings of the same action.
	Cooldown time.Duration `yaml:"cooldown" json:"cooldown"`
}

// Control holds continuous-control smoothing and actuation settings.
type Control struct {
	// SmoothingFactor is the low-pass factor applied to the mapped level.
	SmoothingFactor float64 `yaml:"smoothing_factor" json:"smoothing_factor"`
	// UpdateInterval is the minimum time between two actuator commits.
	UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval"`
}

// Performance holds frame-loop tuning.
type Performance struct {
	// FrameSkip runs detection on every Nth frame only.
	FrameSkip int `yaml:"frame_skip" json:"frame_skip"`
	// MotionThreshold is the percentage of changed pixels that counts as
	// motion when deciding between idle and active mode.
	MotionThreshold float64 `yaml:"motion_threshold" json:"motion_threshold"`
}

// Server holds the control API settings.
type Server struct {
	// Addr is the HTTP listen address. Empty disables the server.
	Addr string `yaml:"addr" json:"addr"`
}

// Config is the root configuration value.
type Config struct {
	Camera      Camera      `yaml:"camera" json:"camera"`
	Gestures    Gestures    `yaml:"gestures" json:"gestures"`
	Control     Control     `yaml:"control" json:"control"`
	Performance Performance `yaml:"performance" json:"performance"`
	Server      Server      `yaml:"server" json:"server"`
	// DataDir is where the SQLite database lives. Empty means ~/.mudra.
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

// Default returns the configuration the system ships with. The gesture
// thresholds assume 640x480 capture.
func Default() Config {
	return Config{
		Camera: Camera{
			DeviceID: 0,
			Width:    640,
			Height:   480,
			FPS:      30,
			Mirror:   true,
		},
		Gestures: Gestures{
			OKDistance:        60,
			SpreadDistance:    50,
			VolumeMinDistance: 30,
			VolumeMaxDistance: 200,
			Cooldown:          time.Second,
		},
		Control: Control{
			SmoothingFactor: 0.3,
			UpdateInterval:  50 * time.Millisecond,
		},
		Performance: Performance{
			FrameSkip:       2,
			MotionThreshold: 1.0,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

var (
	errBadDistanceRange   = errors.New("volume_min_distance must be smaller than volume_max_distance")
	errBadSmoothingFactor = errors.New("smoothing_factor must be within (0, 1]")
	errBadCooldown        = errors.New("cooldown must not be negative")
	errBadFrameSkip       = errors.New("frame_skip must be at least 1")
)

// Validate checks that the numeric knobs are internally consistent.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is not set")
	}

	if cfg.Gestures.VolumeMinDistance >= cfg.Gestures.VolumeMaxDistance {
		return errBadDistanceRange
	}

	if cfg.Control.SmoothingFactor <= 0 || cfg.Control.SmoothingFactor > 1 {
		return errBadSmoothingFactor
	}

	if cfg.Gestures.Cooldown < 0 {
		return errBadCooldown
	}

	if cfg.Performance.FrameSkip < 1 {
		return errBadFrameSkip
	}

	return nil
}

// Load reads the configuration from path, layering the file over the
// defaults so that missing keys keep their default values. A missing file
// is not an error; it yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Default(), fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return Default(), err
	}

	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg Config) error {
	if err := Validate(&cfg); err != nil {
		return err
	}

	if path == "" {
		path = DefaultFilename
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
