// Package detector provides hand detection interfaces and types for the Mudra
// gesture control system.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point is a 2D landmark position in pixel space. The detector's z
// coordinate carries no useful signal for the gestures this system
// recognizes and is dropped during projection.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is one frame's hand landmarks in pixel space. It is either
// empty (no hand detected) or holds exactly NumLandmarks points in
// MediaPipe index order. All classification thresholds are calibrated
// against the pixel scale the snapshot was projected at.
type Snapshot []Point

// Valid reports whether the snapshot holds a complete set of landmarks.
func (s Snapshot) Valid() bool {
	return len(s) == NumLandmarks
}

// Distance returns the Euclidean pixel distance between landmarks i and j.
// It returns 0 for an invalid snapshot or out-of-range indices.
func (s Snapshot) Distance(i, j int) float64 {
	if !s.Valid() || i < 0 || i >= NumLandmarks || j < 0 || j >= NumLandmarks {
		return 0
	}
	return math.Hypot(s[j].X-s[i].X, s[j].Y-s[i].Y)
}

// Midpoint returns the pixel midpoint between landmarks i and j, used by
// callers that render pinch markers. Returns the zero point when the
// snapshot is invalid.
func (s Snapshot) Midpoint(i, j int) Point {
	if !s.Valid() || i < 0 || i >= NumLandmarks || j < 0 || j >= NumLandmarks {
		return Point{}
	}
	return Point{X: (s[i].X + s[j].X) / 2, Y: (s[i].Y + s[j].Y) / 2}
}

// NormalizedPoint is a detector-space landmark with coordinates in [0, 1]
// relative to the frame, as produced by MediaPipe.
type NormalizedPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand in normalized detector coordinates.
type Hand struct {
	Points     [NumLandmarks]NormalizedPoint `json:"points"`
	Handedness string                        `json:"handedness"` // "Left" or "Right"
	Score      float64                       `json:"score"`
}

// Snapshot projects the hand into pixel space for a frame of the given
// dimensions. Classifier thresholds assume a fixed projection scale, so
// callers must pass the resolution the detector actually processed.
func (h *Hand) Snapshot(width, height int) Snapshot {
	if h == nil {
		return nil
	}

	snap := make(Snapshot, NumLandmarks)
	for i := 0; i < NumLandmarks; i++ {
		snap[i] = Point{
			X: h.Points[i].X * float64(width),
			Y: h.Points[i].Y * float64(height),
		}
	}
	return snap
}
