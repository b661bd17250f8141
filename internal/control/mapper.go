// Package control turns gesture classifications into level changes and
// discrete action triggers. All state here is owned by a single frame loop;
// callers must serialize access per instance.
package control

import (
	"math"
	"time"

	"github.com/ayusman/mudra/internal/actuator"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/logger"
)

// Distance jitter filter weights. The raw pinch distance wobbles a few
// pixels frame to frame even for a steady hand, so it is low-passed before
// the percent mapping.
const (
	distanceKeep = 0.7
	distanceMix  = 0.3
)

// LevelMapper maps a pinch distance to a 0-100 level, smooths it across
// frames, and commits it to an actuator at a bounded rate. The smoothed
// display value advances only while the driving gesture feeds Update; when
// the gesture is released the value holds where it was until the next
// active frame.
type LevelMapper struct {
	minDistance float64
	maxDistance float64
	factor      float64
	interval    time.Duration
	act         actuator.Actuator

	distance   float64
	seeded     bool
	display    float64
	committed  int
	lastCommit time.Time
}

// NewLevelMapper creates a LevelMapper for the given actuator. The display
// value is seeded from the actuator's current level so that the first
// gesture glides from the existing volume instead of jumping from zero.
func NewLevelMapper(gestures config.Gestures, control config.Control, act actuator.Actuator) *LevelMapper {
	level := act.Level()
	return &LevelMapper{
		minDistance: gestures.VolumeMinDistance,
		maxDistance: gestures.VolumeMaxDistance,
		factor:      control.SmoothingFactor,
		interval:    control.UpdateInterval,
		act:         act,
		display:     float64(level),
		committed:   level,
	}
}

// PercentForDistance linearly maps a pixel distance from the configured
// range onto [0, 100], clamping at both ends.
func (m *LevelMapper) PercentForDistance(distance float64) float64 {
	if distance <= m.minDistance {
		return 0
	}
	if distance >= m.maxDistance {
		return 100
	}
	return (distance - m.minDistance) / (m.maxDistance - m.minDistance) * 100
}

// Update feeds one frame's raw pinch distance through the jitter filter,
// the percent mapping and the output low-pass, then commits the result to
// the actuator if the update interval has elapsed. It returns the smoothed
// display value and whether a commit was applied.
//
// An actuator failure is logged and the previously committed level is
// retained; smoothing state keeps advancing so the next successful commit
// lands on the current target.
func (m *LevelMapper) Update(rawDistance float64, now time.Time) (float64, bool) {
	if m.seeded {
		m.distance = m.distance*distanceKeep + rawDistance*distanceMix
	} else {
		m.distance = rawDistance
		m.seeded = true
	}

	percent := m.PercentForDistance(m.distance)
	m.display = m.display*(1-m.factor) + percent*m.factor

	if now.Sub(m.lastCommit) < m.interval {
		return m.display, false
	}

	// The interval gate restarts at the attempt, not the success, so a
	// failing actuator is not hammered every frame.
	m.lastCommit = now

	level := int(math.Round(m.display))
	if err := m.act.SetLevel(level); err != nil {
		logger.L().Warnw("actuator rejected level",
			"actuator", m.act.Name(), "level", level, "error", err)
		return m.display, false
	}

	m.committed = level
	return m.display, true
}

// Display returns the current smoothed display value.
func (m *LevelMapper) Display() float64 {
	return m.display
}

// Committed returns the last level successfully applied to the actuator.
func (m *LevelMapper) Committed() int {
	return m.committed
}

// Reset clears the smoothing state and re-seeds the display value from the
// given level.
func (m *LevelMapper) Reset(level int) {
	m.seeded = false
	m.distance = 0
	m.display = float64(level)
	m.committed = level
	m.lastCommit = time.Time{}
}
