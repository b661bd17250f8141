package capture

// FrameSkipper gates expensive per-frame work to every Nth frame. Hand
// detection dominates the frame budget, so running it on every other frame
// roughly halves CPU use without visibly hurting responsiveness.
type FrameSkipper struct {
	every int
	count int
}

// NewFrameSkipper creates a skipper that admits every Nth frame. Values
// below 1 are treated as 1 (process everything).
func NewFrameSkipper(every int) *FrameSkipper {
	if every < 1 {
		every = 1
	}
	return &FrameSkipper{every: every}
}

// ShouldProcess reports whether the current frame should be processed and
// advances the counter.
func (s *FrameSkipper) ShouldProcess() bool {
	s.count++
	return s.count%s.every == 0
}

// Reset restarts the cycle.
func (s *FrameSkipper) Reset() {
	s.count = 0
}
