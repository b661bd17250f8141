package control

import (
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logger"
)

// Action is a named one-shot command bound to a discrete gesture. Between
// firings it cools down for Cooldown; the transition back to the fireable
// state is checked lazily against the clock rather than with a timer.
type Action struct {
	// Name identifies the action in logs and event records.
	Name string
	// Cooldown is the minimum time between two firings.
	Cooldown time.Duration
	// Run executes the action. A nil Run fires successfully as a no-op.
	Run func() error

	lastTriggered time.Time
}

// ready reports whether the cooldown window has elapsed. An action that
// has never fired is always ready.
func (a *Action) ready(now time.Time) bool {
	if a.lastTriggered.IsZero() {
		return true
	}
	return now.Sub(a.lastTriggered) >= a.Cooldown
}

// Dispatcher routes gesture labels to their bound actions. An action fires
// only on a rising edge of its label (the frame the label first appears,
// not every frame it is held) and only once per cooldown window. The
// dispatcher also tracks the gesture session: current and previous label
// and when the current label started.
type Dispatcher struct {
	actions map[gesture.Label]*Action

	current   gesture.Label
	previous  gesture.Label
	startTime time.Time
}

// NewDispatcher creates a Dispatcher with no bindings.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		actions:  make(map[gesture.Label]*Action),
		current:  gesture.NoHand,
		previous: gesture.NoHand,
	}
}

// Bind associates an action with a gesture label, replacing any previous
// binding for that label.
func (d *Dispatcher) Bind(label gesture.Label, action *Action) {
	if action == nil {
		return
	}
	d.actions[label] = action
}

// TryTrigger advances the gesture session with this frame's label and
// attempts to fire the bound action. Both gates must pass: the label must
// have just changed to this value, and the action's cooldown must have
// elapsed. The cooldown stamp is taken before the callback runs, so a
// failing callback still counts as an attempt and is not retried every
// frame. It returns true iff the action ran without error.
func (d *Dispatcher) TryTrigger(label gesture.Label, now time.Time) bool {
	edge := label != d.current
	if edge {
		d.previous = d.current
		d.current = label
		d.startTime = now
	}

	action, bound := d.actions[label]
	if !bound || !edge {
		return false
	}

	if !action.ready(now) {
		return false
	}

	action.lastTriggered = now

	if action.Run == nil {
		return true
	}

	if err := action.Run(); err != nil {
		logger.L().Warnw("action failed", "action", action.Name, "gesture", label, "error", err)
		return false
	}

	return true
}

// Current returns this session's current label.
func (d *Dispatcher) Current() gesture.Label {
	return d.current
}

// HeldFor returns how long the current label has been held.
func (d *Dispatcher) HeldFor(now time.Time) time.Duration {
	if d.startTime.IsZero() {
		return 0
	}
	return now.Sub(d.startTime)
}

// ActionFor returns the action bound to a label, or nil.
func (d *Dispatcher) ActionFor(label gesture.Label) *Action {
	return d.actions[label]
}

// Reset clears every cooldown stamp and the session labels. It is the
// explicit user-initiated state reset; frame processing never calls it.
func (d *Dispatcher) Reset() {
	for _, action := range d.actions {
		action.lastTriggered = time.Time{}
	}
	d.current = gesture.NoHand
	d.previous = gesture.NoHand
	d.startTime = time.Time{}
}
