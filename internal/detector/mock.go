package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Pose fixtures below build hands in normalized coordinates for a mirrored
// front camera: x grows to the right, y grows downward, so an extended
// finger has its tip above (smaller y than) its PIP joint. They are shared
// by classifier, handler and pipeline tests.

// Finger columns in normalized x for a relaxed hand.
const (
	indexCol  = 0.56
	middleCol = 0.50
	ringCol   = 0.44
	pinkyCol  = 0.38
)

func baseHand() Hand {
	h := Hand{Handedness: "Right", Score: 0.95}
	h.Points[Wrist] = NormalizedPoint{X: 0.5, Y: 0.85}
	return h
}

// extendFinger places an extended (up) finger at column x.
// mcp is the finger's MCP landmark index; PIP/DIP/tip follow it.
func extendFinger(h *Hand, mcp int, x float64) {
	h.Points[mcp] = NormalizedPoint{X: x, Y: 0.60}
	h.Points[mcp+1] = NormalizedPoint{X: x, Y: 0.50}
	h.Points[mcp+2] = NormalizedPoint{X: x, Y: 0.40}
	h.Points[mcp+3] = NormalizedPoint{X: x, Y: 0.30}
}

// curlFinger places a curled (down) finger at column x, tip folded toward
// the palm so it sits below its PIP joint.
func curlFinger(h *Hand, mcp int, x float64) {
	h.Points[mcp] = NormalizedPoint{X: x, Y: 0.60}
	h.Points[mcp+1] = NormalizedPoint{X: x, Y: 0.55}
	h.Points[mcp+2] = NormalizedPoint{X: x, Y: 0.62}
	h.Points[mcp+3] = NormalizedPoint{X: x, Y: 0.66}
}

// thumbExtended places the thumb flexed away from the palm (tip right of
// the IP joint under the mirrored-camera convention).
func thumbExtended(h *Hand) {
	h.Points[ThumbCMC] = NormalizedPoint{X: 0.56, Y: 0.78}
	h.Points[ThumbMCP] = NormalizedPoint{X: 0.60, Y: 0.72}
	h.Points[ThumbIP] = NormalizedPoint{X: 0.63, Y: 0.68}
	h.Points[ThumbTip] = NormalizedPoint{X: 0.67, Y: 0.64}
}

// thumbFolded places the thumb across the palm: tip left of the IP joint
// (down) but above the MCP, so it does not read as pointing downward.
func thumbFolded(h *Hand) {
	h.Points[ThumbCMC] = NormalizedPoint{X: 0.56, Y: 0.78}
	h.Points[ThumbMCP] = NormalizedPoint{X: 0.58, Y: 0.70}
	h.Points[ThumbIP] = NormalizedPoint{X: 0.61, Y: 0.66}
	h.Points[ThumbTip] = NormalizedPoint{X: 0.59, Y: 0.63}
}

// thumbPointingDown places the thumb tip below its MCP joint.
func thumbPointingDown(h *Hand) {
	h.Points[ThumbCMC] = NormalizedPoint{X: 0.56, Y: 0.78}
	h.Points[ThumbMCP] = NormalizedPoint{X: 0.58, Y: 0.62}
	h.Points[ThumbIP] = NormalizedPoint{X: 0.57, Y: 0.70}
	h.Points[ThumbTip] = NormalizedPoint{X: 0.55, Y: 0.77}
}

// VolumeControlHand returns a pinch pose: thumb and index extended, the
// remaining fingers curled.
func VolumeControlHand() Hand {
	h := baseHand()
	thumbExtended(&h)
	extendFinger(&h, IndexMCP, indexCol)
	curlFinger(&h, MiddleMCP, middleCol)
	curlFinger(&h, RingMCP, ringCol)
	curlFinger(&h, PinkyMCP, pinkyCol)
	return h
}

// OKHand returns an OK sign: index extended, thumb folded with its tip
// close to the index tip, remaining fingers curled.
func OKHand() Hand {
	h := baseHand()
	thumbFolded(&h)
	extendFinger(&h, IndexMCP, indexCol)
	curlFinger(&h, MiddleMCP, middleCol)
	curlFinger(&h, RingMCP, ringCol)
	curlFinger(&h, PinkyMCP, pinkyCol)

	// Move the thumb tip next to the index tip to close the ring.
	h.Points[ThumbIP] = NormalizedPoint{X: 0.58, Y: 0.45}
	h.Points[ThumbTip] = NormalizedPoint{X: 0.54, Y: 0.36}
	return h
}

// PeaceHand returns a V sign: index and middle extended, the rest curled.
func PeaceHand() Hand {
	h := baseHand()
	thumbFolded(&h)
	extendFinger(&h, IndexMCP, indexCol)
	extendFinger(&h, MiddleMCP, middleCol)
	curlFinger(&h, RingMCP, ringCol)
	curlFinger(&h, PinkyMCP, pinkyCol)
	return h
}

// FistHand returns a closed fist: every finger curled, thumb folded.
func FistHand() Hand {
	h := baseHand()
	thumbFolded(&h)
	curlFinger(&h, IndexMCP, indexCol)
	curlFinger(&h, MiddleMCP, middleCol)
	curlFinger(&h, RingMCP, ringCol)
	curlFinger(&h, PinkyMCP, pinkyCol)
	return h
}

// ThumbDownHand returns a thumb-down pose with the four fingers extended.
func ThumbDownHand() Hand {
	h := baseHand()
	thumbPointingDown(&h)
	extendFinger(&h, IndexMCP, indexCol)
	extendFinger(&h, MiddleMCP, middleCol)
	extendFinger(&h, RingMCP, ringCol)
	extendFinger(&h, PinkyMCP, pinkyCol)
	return h
}

// OpenPalmHand returns an open palm: all five fingers extended at the
// relaxed columns.
func OpenPalmHand() Hand {
	h := baseHand()
	thumbExtended(&h)
	extendFinger(&h, IndexMCP, indexCol)
	extendFinger(&h, MiddleMCP, middleCol)
	extendFinger(&h, RingMCP, ringCol)
	extendFinger(&h, PinkyMCP, pinkyCol)
	return h
}

// SpreadHand returns a splayed hand: four fingers extended and spread wide
// apart, thumb folded. Projected at 640x480 the adjacent tip distances
// exceed the default 50px spread threshold.
func SpreadHand() Hand {
	h := baseHand()
	thumbFolded(&h)
	extendFinger(&h, IndexMCP, 0.62)
	extendFinger(&h, MiddleMCP, 0.50)
	extendFinger(&h, RingMCP, 0.38)
	extendFinger(&h, PinkyMCP, 0.27)
	return h
}
