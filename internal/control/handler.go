package control

import (
	"time"

	"github.com/ayusman/mudra/internal/actuator"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Action names as they appear in logs and the event store.
const (
	ActionPlayPause = "play-pause"
	ActionNextTrack = "next-track"
	ActionPrevTrack = "previous-track"
	ActionMute      = "mute"
	ActionUnmute    = "unmute"
)

// Callbacks holds the commands a host binds to the discrete gestures.
// Nil entries fire as no-ops.
type Callbacks struct {
	PlayPause func() error // OK sign
	NextTrack func() error // peace
	PrevTrack func() error // thumb down
	Mute      func() error // fist
	Unmute    func() error // splayed hand
}

// Result is the outcome of processing one frame.
type Result struct {
	Label   gesture.Label        `json:"label"`
	Fingers gesture.FingerVector `json:"fingers"`

	// Fired and Action report a discrete action that ran this frame.
	Fired  bool   `json:"fired"`
	Action string `json:"action,omitempty"`

	// Volume and Brightness are the smoothed display levels.
	Volume     float64 `json:"volume"`
	Brightness float64 `json:"brightness"`
	// Committed reports whether a level reached an actuator this frame.
	Committed bool `json:"committed"`

	// PinchDistance is the jitter-filtered thumb-index distance when a
	// continuous gesture was active, 0 otherwise.
	PinchDistance float64 `json:"pinchDistance,omitempty"`

	// Held is how long the current label has been held.
	Held time.Duration `json:"held"`
}

// Handler is the per-frame gesture control pipeline: finger classification,
// gesture labeling, continuous level mapping and discrete action dispatch.
// It is synchronous and single-threaded; one snapshot is fully processed
// before the next is accepted, and nothing in it aborts a frame.
type Handler struct {
	classifier *gesture.Classifier
	volume     *LevelMapper
	brightness *LevelMapper
	dispatcher *Dispatcher

	volumeAct     actuator.Actuator
	brightnessAct actuator.Actuator
}

// NewHandler wires a Handler from configuration, the two actuators and the
// host's action callbacks. The brightness actuator may be nil; the open
// palm gesture then classifies as usual but drives nothing.
func NewHandler(cfg config.Config, volume, brightness actuator.Actuator, cb Callbacks) *Handler {
	h := &Handler{
		classifier:    gesture.NewClassifier(cfg.Gestures),
		volume:        NewLevelMapper(cfg.Gestures, cfg.Control, volume),
		dispatcher:    NewDispatcher(),
		volumeAct:     volume,
		brightnessAct: brightness,
	}

	if brightness != nil {
		h.brightness = NewLevelMapper(cfg.Gestures, cfg.Control, brightness)
	}

	cooldown := cfg.Gestures.Cooldown
	h.dispatcher.Bind(gesture.OkSign, &Action{Name: ActionPlayPause, Cooldown: cooldown, Run: cb.PlayPause})
	h.dispatcher.Bind(gesture.Peace, &Action{Name: ActionNextTrack, Cooldown: cooldown, Run: cb.NextTrack})
	h.dispatcher.Bind(gesture.Previous, &Action{Name: ActionPrevTrack, Cooldown: cooldown, Run: cb.PrevTrack})
	h.dispatcher.Bind(gesture.Mute, &Action{Name: ActionMute, Cooldown: cooldown, Run: cb.Mute})
	h.dispatcher.Bind(gesture.Unmute, &Action{Name: ActionUnmute, Cooldown: cooldown, Run: cb.Unmute})

	return h
}

// Process classifies one frame's snapshot and routes it: continuous
// gestures drive their level mapper, discrete gestures go through the
// dispatcher's edge and cooldown gates. Time is sampled once by the caller
// and shared by every computation in the frame.
func (h *Handler) Process(snap detector.Snapshot, now time.Time) Result {
	fingers := gesture.Fingers(snap)
	label := h.classifier.ClassifyFingers(fingers, snap)

	result := Result{
		Label:      label,
		Fingers:    fingers,
		Volume:     h.volume.Display(),
		Brightness: h.brightnessDisplay(),
	}

	// The dispatcher sees every frame so the session edge detection stays
	// aligned with the label stream; continuous labels have no binding and
	// fall through.
	if h.dispatcher.TryTrigger(label, now) {
		result.Fired = true
		result.Action = h.dispatcher.ActionFor(label).Name
	}

	switch label {
	case gesture.VolumeControl:
		pinch := snap.Distance(detector.ThumbTip, detector.IndexTip)
		display, committed := h.volume.Update(pinch, now)
		result.Volume = display
		result.Committed = committed
		result.PinchDistance = pinch

	case gesture.Brightness:
		if h.brightness != nil {
			pinch := snap.Distance(detector.ThumbTip, detector.IndexTip)
			display, committed := h.brightness.Update(pinch, now)
			result.Brightness = display
			result.Committed = committed
			result.PinchDistance = pinch
		}
	}

	result.Held = h.dispatcher.HeldFor(now)

	return result
}

// Volume returns the last level committed to the volume actuator.
func (h *Handler) Volume() int {
	return h.volume.Committed()
}

// Current returns the gesture session's current label.
func (h *Handler) Current() gesture.Label {
	return h.dispatcher.Current()
}

// Reset clears all cooldowns, the gesture session and the smoothing state,
// re-seeding the display levels from the actuators.
func (h *Handler) Reset() {
	h.dispatcher.Reset()
	h.volume.Reset(h.volumeAct.Level())
	if h.brightness != nil {
		h.brightness.Reset(h.brightnessAct.Level())
	}
}

func (h *Handler) brightnessDisplay() float64 {
	if h.brightness == nil {
		return 0
	}
	return h.brightness.Display()
}
