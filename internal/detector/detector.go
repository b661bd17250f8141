package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hands in
	// normalized coordinates. Returns an empty slice if no hands are found.
	Detect(frame *gocv.Mat) ([]Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect. The control
	// pipeline only consumes one hand per frame, so 1 is the default.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.6,
		MinTrackingConf: 0.5,
	}
}

// SelectHand picks the hand at the given index from a detection result and
// projects it to pixel space. It returns an empty snapshot when the index
// is out of range, which downstream classifiers treat as "no hand".
func SelectHand(hands []Hand, index, width, height int) Snapshot {
	if index < 0 || index >= len(hands) {
		return nil
	}
	return hands[index].Snapshot(width, height)
}
