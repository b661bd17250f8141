// Package gesture classifies hand landmark snapshots into finger states and
// named gesture labels.
package gesture

import "github.com/ayusman/mudra/internal/detector"

// Finger identifies one finger in thumb-to-pinky order.
type Finger int

// Fingers in vector order.
const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// fingerTips holds the landmark index of each finger tip in vector order.
var fingerTips = [NumFingers]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// FingerVector is the per-frame up/down state of the five fingers.
// The zero value has OK=false and represents "no hand / invalid input".
type FingerVector struct {
	Up [NumFingers]bool
	// OK reports whether the vector was derived from a complete snapshot.
	OK bool
}

// Count returns how many fingers are up.
func (v FingerVector) Count() int {
	n := 0
	for _, up := range v.Up {
		if up {
			n++
		}
	}
	return n
}

// CountFrom returns how many fingers from the given finger onward are up.
func (v FingerVector) CountFrom(f Finger) int {
	n := 0
	for i := f; i < NumFingers; i++ {
		if v.Up[i] {
			n++
		}
	}
	return n
}

// Fingers derives the finger state vector from a snapshot. An invalid
// snapshot yields the zero vector.
//
// The thumb flexes sideways rather than vertically, so it compares tip and
// IP joint on the x axis; under the mirrored front-camera convention an
// extended thumb has its tip to the right of the joint. The other four
// fingers compare the tip against the PIP joint two landmarks below it on
// the y axis: smaller y means higher on screen, which means extended.
func Fingers(snap detector.Snapshot) FingerVector {
	if !snap.Valid() {
		return FingerVector{}
	}

	var v FingerVector
	v.OK = true

	v.Up[Thumb] = snap[detector.ThumbTip].X > snap[detector.ThumbIP].X

	for f := Index; f < NumFingers; f++ {
		tip := fingerTips[f]
		v.Up[f] = snap[tip].Y < snap[tip-2].Y
	}

	return v
}
