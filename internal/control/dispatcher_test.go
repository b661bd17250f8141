package control

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/gesture"
)

func TestTryTrigger_EdgeAndCooldownGates(t *testing.T) {
	t.Parallel()

	fired := 0
	d := NewDispatcher()
	d.Bind(gesture.OkSign, &Action{
		Name:     ActionPlayPause,
		Cooldown: time.Second,
		Run:      func() error { fired++; return nil },
	})

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	at := func(seconds float64) time.Time {
		return base.Add(time.Duration(seconds * float64(time.Second)))
	}

	// t=0: Unknown -> OkSign rising edge, cooldown clear: fires.
	assert.True(t, d.TryTrigger(gesture.OkSign, at(0)))
	assert.Equal(t, 1, fired)

	// t=0.5: held, no edge: no fire.
	assert.False(t, d.TryTrigger(gesture.OkSign, at(0.5)))

	// t=0.6: drop to Unknown.
	assert.False(t, d.TryTrigger(gesture.Unknown, at(0.6)))

	// t=0.8: fresh edge but only 0.8s since the last trigger: no fire.
	assert.False(t, d.TryTrigger(gesture.OkSign, at(0.8)))

	// t=1.0: drop again.
	assert.False(t, d.TryTrigger(gesture.Unknown, at(1.0)))

	// t=1.2: edge present and cooldown elapsed: fires.
	assert.True(t, d.TryTrigger(gesture.OkSign, at(1.2)))
	assert.Equal(t, 2, fired)
}

func TestTryTrigger_SingleHoldFiresOnce(t *testing.T) {
	t.Parallel()

	fired := 0
	d := NewDispatcher()
	d.Bind(gesture.Mute, &Action{
		Name:     ActionMute,
		Cooldown: 100 * time.Millisecond,
		Run:      func() error { fired++; return nil },
	})

	// A continuous hold far beyond the cooldown still fires exactly once:
	// re-triggering needs the label to drop and return.
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		d.TryTrigger(gesture.Mute, now.Add(time.Duration(i)*33*time.Millisecond))
	}
	assert.Equal(t, 1, fired)
}

func TestTryTrigger_UnboundLabelAdvancesSession(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, d.TryTrigger(gesture.VolumeControl, now))
	assert.Equal(t, gesture.VolumeControl, d.Current())
	assert.Equal(t, 2*time.Second, d.HeldFor(now.Add(2*time.Second)))

	// The session edge survives through unbound labels: holding the pinch
	// and then making a fist is a fresh edge for the fist.
	fired := 0
	d.Bind(gesture.Mute, &Action{Name: ActionMute, Cooldown: time.Second, Run: func() error { fired++; return nil }})
	assert.True(t, d.TryTrigger(gesture.Mute, now.Add(time.Second)))
	assert.Equal(t, 1, fired)
}

func TestTryTrigger_CallbackFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	d := NewDispatcher()
	d.Bind(gesture.Peace, &Action{
		Name:     ActionNextTrack,
		Cooldown: time.Second,
		Run:      func() error { calls++; return errors.New("player unreachable") },
	})

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// The failing callback ran but the trigger reports failure.
	assert.False(t, d.TryTrigger(gesture.Peace, now))
	assert.Equal(t, 1, calls)

	// The cooldown was stamped before the callback, so an immediate
	// drop-and-return does not retry.
	d.TryTrigger(gesture.Unknown, now.Add(100*time.Millisecond))
	assert.False(t, d.TryTrigger(gesture.Peace, now.Add(200*time.Millisecond)))
	assert.Equal(t, 1, calls)

	// After the cooldown a fresh edge runs it again.
	d.TryTrigger(gesture.Unknown, now.Add(1100*time.Millisecond))
	assert.False(t, d.TryTrigger(gesture.Peace, now.Add(1200*time.Millisecond)))
	assert.Equal(t, 2, calls)
}

func TestTryTrigger_NilRunFires(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	d.Bind(gesture.Unmute, &Action{Name: ActionUnmute, Cooldown: time.Second})

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, d.TryTrigger(gesture.Unmute, now))
}

func TestTryTrigger_FailureDoesNotBlockOtherActions(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	d.Bind(gesture.Peace, &Action{
		Name:     ActionNextTrack,
		Cooldown: time.Second,
		Run:      func() error { return errors.New("boom") },
	})

	muted := false
	d.Bind(gesture.Mute, &Action{
		Name:     ActionMute,
		Cooldown: time.Second,
		Run:      func() error { muted = true; return nil },
	})

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, d.TryTrigger(gesture.Peace, now))
	assert.True(t, d.TryTrigger(gesture.Mute, now.Add(100*time.Millisecond)))
	assert.True(t, muted)
}

func TestReset_ClearsCooldownsAndSession(t *testing.T) {
	t.Parallel()

	fired := 0
	d := NewDispatcher()
	d.Bind(gesture.OkSign, &Action{
		Name:     ActionPlayPause,
		Cooldown: time.Hour,
		Run:      func() error { fired++; return nil },
	})

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, d.TryTrigger(gesture.OkSign, now))

	d.Reset()
	assert.Equal(t, gesture.NoHand, d.Current())
	assert.Zero(t, d.HeldFor(now))

	// The hour-long cooldown is gone and the cleared session makes the
	// same label a fresh edge.
	assert.True(t, d.TryTrigger(gesture.OkSign, now.Add(time.Millisecond)))
	assert.Equal(t, 2, fired)
}
