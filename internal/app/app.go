// Package app wires the capture, detection and control stages into the
// running Mudra pipeline.
package app

import (
	"strconv"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// DefaultActiveFPS is the active frame rate when the camera config
	// does not set one.
	DefaultActiveFPS = 15
	// IdleTimeout is how long after the last motion the pipeline drops
	// back to idle mode.
	IdleTimeout = 2 * time.Second
)

// settingVolume is the settings key under which the last committed volume
// level is persisted across restarts.
const settingVolume = "volume"

// Config holds the pipeline dependencies. Handler is required; Camera and
// Detector default to the real camera and the MediaPipe subprocess.
type Config struct {
	Cfg      config.Config
	Store    *store.Store
	Camera   capture.Camera
	Detector detector.Detector
	Handler  *control.Handler
}

// App runs the frame loop: camera, motion gate, frame skipper, hand
// detection and the per-frame gesture handler.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	skipper  *capture.FrameSkipper
	detector detector.Detector
	handler  *control.Handler

	enabled  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	onResult func(control.Result)

	lastResult control.Result
	lastUpdate time.Time
	mu         sync.RWMutex
}

// New creates an App from the given configuration, filling in the default
// camera and detector where none were injected.
func New(cfg Config) *App {
	threshold := cfg.Cfg.Performance.MotionThreshold
	if threshold <= 0 {
		threshold = 1.0
	}

	a := &App{
		config:  cfg,
		camera:  cfg.Camera,
		motion:  capture.NewMotionDetector(threshold),
		skipper: capture.NewFrameSkipper(cfg.Cfg.Performance.FrameSkip),
		handler: cfg.Handler,
		enabled: true,
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(cfg.Cfg.Camera)
	}

	if cfg.Detector != nil {
		a.detector = cfg.Detector
	} else if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		logger.L().Infow("using MediaPipe hand detection")
	} else {
		logger.L().Warnw("MediaPipe not available, using mock detector", "error", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture processing. Disabling also
// resets the gesture session and smoothing state so a re-enable starts
// from the actuators' real levels.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.handler.Reset()
	}
}

// IsEnabled returns whether gesture processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnResult registers a callback invoked whenever an action fires or the
// recognized label changes. It must be set before Start.
func (a *App) OnResult(fn func(control.Result)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onResult = fn
}

// LastResult returns the most recent frame result and when it was produced.
func (a *App) LastResult() (control.Result, time.Time) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastResult, a.lastUpdate
}

// Handler returns the gesture handler.
func (a *App) Handler() *control.Handler {
	return a.handler
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Start opens the camera and begins the frame loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	logger.L().Infow("pipeline started")
	return nil
}

// Stop halts the frame loop and releases the camera, motion detector and
// hand detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}

	if err := a.camera.Close(); err != nil {
		logger.L().Warnw("failed to close camera", "error", err)
	}

	a.motion.Close()

	if err := a.detector.Close(); err != nil {
		logger.L().Warnw("failed to close detector", "error", err)
	}

	logger.L().Infow("pipeline stopped")
}

// record publishes a frame result: it updates the shared state, persists
// fired actions and committed levels, and notifies the result callback.
func (a *App) record(result control.Result, now time.Time) {
	a.mu.Lock()
	changed := result.Label != a.lastResult.Label
	a.lastResult = result
	a.lastUpdate = now
	callback := a.onResult
	a.mu.Unlock()

	if a.config.Store != nil {
		if result.Fired {
			event := &store.Event{
				Label:  string(result.Label),
				Action: result.Action,
				Level:  a.handler.Volume(),
			}
			if err := a.config.Store.Events().Insert(event); err != nil {
				logger.L().Warnw("failed to record event", "error", err)
			}
		}

		if result.Committed {
			level := strconv.Itoa(a.handler.Volume())
			if err := a.config.Store.Settings().Set(settingVolume, level); err != nil {
				logger.L().Warnw("failed to persist volume level", "error", err)
			}
		}
	}

	if callback != nil && (result.Fired || changed) {
		callback(result)
	}
}
