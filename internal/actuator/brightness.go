package actuator

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
)

// SystemBrightness controls display backlight brightness: brightnessctl on
// Linux, the brightness CLI on macOS.
type SystemBrightness struct {
	goos string
	run  commandRunner

	mu    sync.Mutex
	level int
}

// NewSystemBrightness creates a SystemBrightness for the current platform.
func NewSystemBrightness() (*SystemBrightness, error) {
	return newSystemBrightness(runtime.GOOS, runCommand)
}

func newSystemBrightness(goos string, run commandRunner) (*SystemBrightness, error) {
	switch goos {
	case "darwin", "linux":
		return &SystemBrightness{goos: goos, run: run, level: 50}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Name returns the actuator name.
func (b *SystemBrightness) Name() string {
	return "system-brightness"
}

// SetLevel applies the brightness percentage to the host.
func (b *SystemBrightness) SetLevel(percent int) error {
	percent = clamp(percent)

	var err error
	switch b.goos {
	case "darwin":
		err = b.run("brightness", strconv.FormatFloat(float64(percent)/100, 'f', 2, 64))
	case "linux":
		err = b.run("brightnessctl", "set", strconv.Itoa(percent)+"%")
	}
	if err != nil {
		return fmt.Errorf("set brightness: %w", err)
	}

	b.mu.Lock()
	b.level = percent
	b.mu.Unlock()

	return nil
}

// Level returns the last successfully applied brightness.
func (b *SystemBrightness) Level() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}
