package actuator

import (
	"fmt"
	"runtime"
)

// MediaKeys drives the host's media player by shelling out to the platform
// tool: osascript on macOS, playerctl on Linux.
type MediaKeys struct {
	goos string
	run  commandRunner
}

// NewMediaKeys creates a MediaKeys controller for the current platform.
func NewMediaKeys() (*MediaKeys, error) {
	return newMediaKeys(runtime.GOOS, runCommand)
}

func newMediaKeys(goos string, run commandRunner) (*MediaKeys, error) {
	switch goos {
	case "darwin", "linux":
		return &MediaKeys{goos: goos, run: run}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// PlayPause toggles playback.
func (m *MediaKeys) PlayPause() error {
	var err error
	switch m.goos {
	case "darwin":
		err = m.run("osascript", "-e", `tell application "Music" to playpause`)
	case "linux":
		err = m.run("playerctl", "play-pause")
	}
	if err != nil {
		return fmt.Errorf("play-pause: %w", err)
	}
	return nil
}

// NextTrack skips to the next track.
func (m *MediaKeys) NextTrack() error {
	var err error
	switch m.goos {
	case "darwin":
		err = m.run("osascript", "-e", `tell application "Music" to next track`)
	case "linux":
		err = m.run("playerctl", "next")
	}
	if err != nil {
		return fmt.Errorf("next track: %w", err)
	}
	return nil
}

// PrevTrack jumps back to the previous track.
func (m *MediaKeys) PrevTrack() error {
	var err error
	switch m.goos {
	case "darwin":
		err = m.run("osascript", "-e", `tell application "Music" to previous track`)
	case "linux":
		err = m.run("playerctl", "previous")
	}
	if err != nil {
		return fmt.Errorf("previous track: %w", err)
	}
	return nil
}
