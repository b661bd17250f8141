package actuator

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
)

// ErrUnsupportedPlatform is returned when no volume mechanism exists for
// the host OS.
var ErrUnsupportedPlatform = errors.New("no system volume support for this platform")

// commandRunner executes a shell command; injectable for tests.
type commandRunner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, string(output))
	}
	return nil
}

// SystemVolume controls the host's master volume by shelling out to the
// platform tool: osascript on macOS, amixer on Linux. It caches the last
// level it successfully applied; a failed call leaves the cache untouched.
type SystemVolume struct {
	goos string
	run  commandRunner

	mu    sync.Mutex
	level int
}

// NewSystemVolume creates a SystemVolume for the current platform. The
// initial cached level is 50, matching a freshly started session before
// the first gesture lands.
func NewSystemVolume() (*SystemVolume, error) {
	return newSystemVolume(runtime.GOOS, runCommand)
}

func newSystemVolume(goos string, run commandRunner) (*SystemVolume, error) {
	switch goos {
	case "darwin", "linux":
		return &SystemVolume{goos: goos, run: run, level: 50}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Name returns the actuator name.
func (v *SystemVolume) Name() string {
	return "system-volume"
}

// SetLevel applies the volume percentage to the host.
func (v *SystemVolume) SetLevel(percent int) error {
	percent = clamp(percent)

	var err error
	switch v.goos {
	case "darwin":
		err = v.run("osascript", "-e", fmt.Sprintf("set volume output volume %d", percent))
	case "linux":
		err = v.run("amixer", "set", "Master", strconv.Itoa(percent)+"%")
	}
	if err != nil {
		return fmt.Errorf("set volume: %w", err)
	}

	v.mu.Lock()
	v.level = percent
	v.mu.Unlock()

	return nil
}

// Level returns the last successfully applied volume.
func (v *SystemVolume) Level() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.level
}

// Mute silences output without touching the cached level.
func (v *SystemVolume) Mute() error {
	var err error
	switch v.goos {
	case "darwin":
		err = v.run("osascript", "-e", "set volume output muted true")
	case "linux":
		err = v.run("amixer", "set", "Master", "mute")
	}
	if err != nil {
		return fmt.Errorf("mute: %w", err)
	}
	return nil
}

// Unmute restores output.
func (v *SystemVolume) Unmute() error {
	var err error
	switch v.goos {
	case "darwin":
		err = v.run("osascript", "-e", "set volume output muted false")
	case "linux":
		err = v.run("amixer", "set", "Master", "unmute")
	}
	if err != nil {
		return fmt.Errorf("unmute: %w", err)
	}
	return nil
}
