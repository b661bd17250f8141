package gesture

import (
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
)

// Label is the closed set of gesture classifications. Exactly one label is
// produced per frame.
type Label string

const (
	// NoHand means the frame carried no complete hand snapshot.
	NoHand Label = "no-hand"
	// Unknown means a hand was present but matched no known pose.
	Unknown Label = "unknown"
	// OkSign is thumb and index forming a ring, other fingers curled.
	OkSign Label = "ok"
	// Peace is index and middle extended in a V.
	Peace Label = "peace"
	// VolumeControl is the thumb-index pinch that drives the volume level.
	VolumeControl Label = "volume-control"
	// Mute is a closed fist.
	Mute Label = "mute"
	// Unmute is a splayed open hand.
	Unmute Label = "unmute"
	// Previous is a thumb-down pose with the other fingers extended.
	Previous Label = "previous"
	// Brightness is an open palm, all five fingers extended.
	Brightness Label = "brightness"
)

// Labels lists every label the classifier can produce.
func Labels() []Label {
	return []Label{
		NoHand, Unknown, OkSign, Peace, VolumeControl,
		Mute, Unmute, Previous, Brightness,
	}
}

// Continuous reports whether the label drives a live numeric parameter
// every frame it is held, as opposed to firing a one-shot action.
func (l Label) Continuous() bool {
	return l == VolumeControl || l == Brightness
}

// Classifier maps finger state vectors and landmark geometry to gesture
// labels. It is a pure function of its inputs; thresholds are fixed at
// construction.
type Classifier struct {
	okDistance     float64
	spreadDistance float64
}

// NewClassifier creates a Classifier with the given threshold settings.
// The thresholds are in pixels and only meaningful at the camera
// resolution they were calibrated for.
func NewClassifier(cfg config.Gestures) *Classifier {
	return &Classifier{
		okDistance:     cfg.OKDistance,
		spreadDistance: cfg.SpreadDistance,
	}
}

// Classify returns the gesture label for a snapshot.
//
// Patterns are checked from most geometrically specific to least specific,
// so a hand mid-transition between poses resolves to the first pattern it
// satisfies. The ordering is a deliberate tie-break policy: reordering the
// checks changes which label wins when several patterns overlap (an open
// palm satisfies both the brightness and the unmute shape, and resolves to
// brightness because it is checked first).
func (c *Classifier) Classify(snap detector.Snapshot) Label {
	if !snap.Valid() {
		return NoHand
	}

	return c.ClassifyFingers(Fingers(snap), snap)
}

// ClassifyFingers is Classify for callers that already derived the finger
// vector for this frame.
func (c *Classifier) ClassifyFingers(v FingerVector, snap detector.Snapshot) Label {
	if !v.OK || !snap.Valid() {
		return NoHand
	}

	restDown := !v.Up[Middle] && !v.Up[Ring] && !v.Up[Pinky]

	// Pinch: thumb and index up, other fingers curled.
	if v.Up[Thumb] && v.Up[Index] && restDown {
		return VolumeControl
	}

	// OK sign: index up, thumb folded onto it, other fingers curled.
	if v.Up[Index] && !v.Up[Thumb] && restDown {
		if snap.Distance(detector.ThumbTip, detector.IndexTip) < c.okDistance {
			return OkSign
		}
	}

	// V sign.
	if v.Up[Index] && v.Up[Middle] && !v.Up[Thumb] && !v.Up[Ring] && !v.Up[Pinky] {
		return Peace
	}

	// Closed fist.
	if v.Count() == 0 {
		return Mute
	}

	// Thumb pointing down with most of the hand open.
	if snap[detector.ThumbTip].Y > snap[detector.ThumbMCP].Y && v.CountFrom(Index) >= 3 {
		return Previous
	}

	// Open palm.
	if v.Count() == NumFingers {
		return Brightness
	}

	// Splayed hand: four or more fingers up with daylight between the tips.
	if v.Count() >= 4 {
		spreadIM := snap.Distance(detector.IndexTip, detector.MiddleTip)
		spreadMR := snap.Distance(detector.MiddleTip, detector.RingTip)
		if spreadIM > c.spreadDistance && spreadMR > c.spreadDistance {
			return Unmute
		}
	}

	return Unknown
}
