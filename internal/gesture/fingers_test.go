package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/detector"
)

const (
	frameWidth  = 640
	frameHeight = 480
)

func snapshotOf(h detector.Hand) detector.Snapshot {
	return h.Snapshot(frameWidth, frameHeight)
}

func TestFingers_InvalidSnapshot(t *testing.T) {
	t.Parallel()

	for _, snap := range []detector.Snapshot{
		nil,
		{},
		make(detector.Snapshot, 5),
		make(detector.Snapshot, detector.NumLandmarks-1),
		make(detector.Snapshot, detector.NumLandmarks+3),
	} {
		v := Fingers(snap)
		assert.False(t, v.OK, "snapshot of length %d", len(snap))
		assert.Zero(t, v.Count())
	}
}

func TestFingers_Poses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hand detector.Hand
		want [NumFingers]bool
	}{
		{"pinch", detector.VolumeControlHand(), [NumFingers]bool{true, true, false, false, false}},
		{"ok", detector.OKHand(), [NumFingers]bool{false, true, false, false, false}},
		{"peace", detector.PeaceHand(), [NumFingers]bool{false, true, true, false, false}},
		{"fist", detector.FistHand(), [NumFingers]bool{false, false, false, false, false}},
		{"thumb down", detector.ThumbDownHand(), [NumFingers]bool{false, true, true, true, true}},
		{"open palm", detector.OpenPalmHand(), [NumFingers]bool{true, true, true, true, true}},
		{"spread", detector.SpreadHand(), [NumFingers]bool{false, true, true, true, true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := Fingers(snapshotOf(tc.hand))
			require.True(t, v.OK)
			assert.Equal(t, tc.want, v.Up)
		})
	}
}

func TestFingers_Idempotent(t *testing.T) {
	t.Parallel()

	snap := snapshotOf(detector.PeaceHand())

	first := Fingers(snap)
	second := Fingers(snap)
	assert.Equal(t, first, second)
}

func TestFingerVector_Counting(t *testing.T) {
	t.Parallel()

	v := FingerVector{OK: true}
	v.Up[Thumb] = true
	v.Up[Index] = true
	v.Up[Pinky] = true

	assert.Equal(t, 3, v.Count())
	assert.Equal(t, 2, v.CountFrom(Index))
	assert.Equal(t, 1, v.CountFrom(Middle))
	assert.Equal(t, 1, v.CountFrom(Pinky))
}
