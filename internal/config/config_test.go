package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(&cfg))

	// Inverted distance range.
	cfg = Default()
	cfg.Gestures.VolumeMinDistance = 300
	require.ErrorIs(t, Validate(&cfg), errBadDistanceRange)

	// Smoothing factor out of range.
	cfg = Default()
	cfg.Control.SmoothingFactor = 0
	require.ErrorIs(t, Validate(&cfg), errBadSmoothingFactor)

	cfg = Default()
	cfg.Control.SmoothingFactor = 1.5
	require.ErrorIs(t, Validate(&cfg), errBadSmoothingFactor)

	// Negative cooldown.
	cfg = Default()
	cfg.Gestures.Cooldown = -time.Second
	require.ErrorIs(t, Validate(&cfg), errBadCooldown)

	// Zero frame skip.
	cfg = Default()
	cfg.Performance.FrameSkip = 0
	require.ErrorIs(t, Validate(&cfg), errBadFrameSkip)

	require.Error(t, Validate(nil))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	contents := "gestures:\n  ok_distance: 75\nserver:\n  addr: \":9090\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden keys.
	assert.Equal(t, 75.0, cfg.Gestures.OKDistance)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	// Untouched keys keep their defaults.
	assert.Equal(t, 50.0, cfg.Gestures.SpreadDistance)
	assert.Equal(t, time.Second, cfg.Gestures.Cooldown)
	assert.Equal(t, 640, cfg.Camera.Width)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFilename)

	cfg := Default()
	cfg.Gestures.OKDistance = 45
	cfg.Control.UpdateInterval = 80 * time.Millisecond
	cfg.Camera.Mirror = false

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Gestures.VolumeMaxDistance = cfg.Gestures.VolumeMinDistance

	err := Save(filepath.Join(t.TempDir(), DefaultFilename), cfg)
	require.Error(t, err)
}
