// Package actuator applies level changes to the host system's volume and
// brightness. Implementations accept a 0-100 percentage and report failure;
// they never retry on their own.
package actuator

import "sync"

// Actuator applies an integer percentage level to some system parameter.
type Actuator interface {
	// Name identifies the actuator in logs and API payloads.
	Name() string

	// SetLevel applies the level, clamped to [0, 100]. On failure the
	// previously applied level remains in effect.
	SetLevel(percent int) error

	// Level returns the last successfully applied level.
	Level() int
}

// Muter is implemented by actuators that support a mute toggle.
type Muter interface {
	Mute() error
	Unmute() error
}

// clamp bounds a percentage to [0, 100].
func clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Simulator is an in-memory actuator for tests and headless operation. It
// returns success-shaped responses so the control pipeline behaves exactly
// as it would against a real device.
type Simulator struct {
	name  string
	mu    sync.Mutex
	level int
	muted bool
	// nextErr, when set, fails the next SetLevel call once.
	nextErr error
}

// NewSimulator creates a Simulator with the given name and initial level.
func NewSimulator(name string, level int) *Simulator {
	return &Simulator{name: name, level: clamp(level)}
}

// Name returns the simulator's name.
func (s *Simulator) Name() string {
	return s.name
}

// SetLevel stores the level, or fails once if an error was injected.
func (s *Simulator) SetLevel(percent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextErr != nil {
		err := s.nextErr
		s.nextErr = nil
		return err
	}

	s.level = clamp(percent)
	return nil
}

// Level returns the last stored level.
func (s *Simulator) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Mute marks the simulator muted.
func (s *Simulator) Mute() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = true
	return nil
}

// Unmute clears the muted flag.
func (s *Simulator) Unmute() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = false
	return nil
}

// Muted reports the simulated mute state.
func (s *Simulator) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// FailNext makes the next SetLevel call return err.
func (s *Simulator) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextErr = err
}
