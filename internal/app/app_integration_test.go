package app

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/actuator"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/store"
)

// testRig bundles the pipeline with its mock ends so tests can drive
// frames in and observe actuator and callback effects out.
type testRig struct {
	app       *App
	camera    *capture.MockCamera
	detector  *detector.MockDetector
	volume    *actuator.Simulator
	store     *store.Store
	playPause atomic.Int32
	mute      atomic.Int32
}

// motionFrames builds an alternating black/white frame sequence so the
// motion gate sees constant change and stays in active mode.
func motionFrames(t *testing.T) []*gocv.Mat {
	t.Helper()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	t.Cleanup(func() {
		black.Close()
		white.Close()
	})

	return []*gocv.Mat{&black, &white}
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	rig := &testRig{
		camera:   capture.NewMockCamera(motionFrames(t), 640, 480, true),
		detector: detector.NewMockDetector(),
		volume:   actuator.NewSimulator("volume", 50),
	}

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	rig.store = st

	cfg := config.Default()
	cfg.Camera.FPS = 30
	cfg.Performance.FrameSkip = 1

	handler := control.NewHandler(cfg, rig.volume, nil, control.Callbacks{
		PlayPause: func() error { rig.playPause.Add(1); return nil },
		Mute:      func() error { rig.mute.Add(1); return nil },
	})

	rig.app = New(Config{
		Cfg:      cfg,
		Store:    st,
		Camera:   rig.camera,
		Detector: rig.detector,
		Handler:  handler,
	})

	return rig
}

func TestApp_FiresDiscreteAction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	rig := newTestRig(t)
	rig.detector.SetHands([]detector.Hand{detector.OKHand()})

	require.NoError(t, rig.app.Start())
	defer rig.app.Stop()

	require.Eventually(t, func() bool {
		return rig.playPause.Load() == 1
	}, 5*time.Second, 20*time.Millisecond, "holding the OK sign should fire play-pause once")

	// A held gesture must not refire within the cooldown.
	time.Sleep(300 * time.Millisecond)
	assert.EqualValues(t, 1, rig.playPause.Load())

	// The fired action was recorded.
	events, err := rig.store.Events().ListRecent(10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "ok", events[0].Label)
	assert.Equal(t, control.ActionPlayPause, events[0].Action)
}

func TestApp_DrivesVolumeActuator(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	rig := newTestRig(t)
	rig.detector.SetHands([]detector.Hand{detector.VolumeControlHand()})

	require.NoError(t, rig.app.Start())
	defer rig.app.Stop()

	// The fixture's pinch maps well above the 50 seed, so the smoothed
	// level should climb and get committed to the actuator.
	require.Eventually(t, func() bool {
		return rig.volume.Level() > 60
	}, 5*time.Second, 20*time.Millisecond, "pinch distance should drive the volume level up")

	// The committed level is persisted for the next start.
	value, err := rig.store.Settings().Get("volume")
	require.NoError(t, err)
	assert.NotEmpty(t, value)
}

func TestApp_EdgeRetriggerAfterHandLoss(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	rig := newTestRig(t)
	rig.detector.SetHands([]detector.Hand{detector.FistHand()})

	require.NoError(t, rig.app.Start())
	defer rig.app.Stop()

	require.Eventually(t, func() bool {
		return rig.mute.Load() == 1
	}, 5*time.Second, 20*time.Millisecond)

	// Drop the hand, then show the fist again after the cooldown: the new
	// edge fires a second time.
	rig.detector.SetHands(nil)
	time.Sleep(300 * time.Millisecond)
	time.Sleep(config.Default().Gestures.Cooldown)
	rig.detector.SetHands([]detector.Hand{detector.FistHand()})

	require.Eventually(t, func() bool {
		return rig.mute.Load() == 2
	}, 5*time.Second, 20*time.Millisecond)
}

func TestApp_DisabledProcessesNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	rig := newTestRig(t)
	rig.detector.SetHands([]detector.Hand{detector.OKHand()})
	rig.app.SetEnabled(false)

	require.NoError(t, rig.app.Start())
	defer rig.app.Stop()

	time.Sleep(500 * time.Millisecond)
	assert.Zero(t, rig.playPause.Load(), "disabled pipeline must not fire actions")

	rig.app.SetEnabled(true)

	require.Eventually(t, func() bool {
		return rig.playPause.Load() == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestApp_StartIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	rig := newTestRig(t)

	require.NoError(t, rig.app.Start())
	require.NoError(t, rig.app.Start())
	rig.app.Stop()
}

func TestApp_PublishesState(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	rig := newTestRig(t)
	rig.detector.SetHands([]detector.Hand{detector.PeaceHand()})

	var last atomic.Value
	rig.app.OnResult(func(r control.Result) { last.Store(r) })

	require.NoError(t, rig.app.Start())
	defer rig.app.Stop()

	require.Eventually(t, func() bool {
		result, at := rig.app.LastResult()
		return !at.IsZero() && result.Label == "peace"
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		r, ok := last.Load().(control.Result)
		return ok && r.Label == "peace"
	}, 5*time.Second, 20*time.Millisecond, "label change should reach the result callback")
}

func TestApp_Defaults(t *testing.T) {
	cfg := config.Default()

	a := New(Config{
		Cfg:      cfg,
		Camera:   capture.NewMockCamera(nil, 640, 480, false),
		Detector: detector.NewMockDetector(),
		Handler: control.NewHandler(cfg, actuator.NewSimulator("volume", 50), nil,
			control.Callbacks{}),
	})

	assert.True(t, a.IsEnabled(), "processing starts enabled")

	a.SetEnabled(false)
	assert.False(t, a.IsEnabled())
}
