package detector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	frameWidth  = 640
	frameHeight = 480
)

func TestSnapshot_Valid(t *testing.T) {
	t.Parallel()

	assert.False(t, Snapshot(nil).Valid())
	assert.False(t, make(Snapshot, 5).Valid())
	assert.False(t, make(Snapshot, NumLandmarks+1).Valid())
	assert.True(t, make(Snapshot, NumLandmarks).Valid())
}

func TestSnapshot_Distance(t *testing.T) {
	t.Parallel()

	snap := make(Snapshot, NumLandmarks)
	snap[ThumbTip] = Point{X: 0, Y: 0}
	snap[IndexTip] = Point{X: 3, Y: 4}

	assert.InDelta(t, 5.0, snap.Distance(ThumbTip, IndexTip), 1e-9)
	assert.InDelta(t, 5.0, snap.Distance(IndexTip, ThumbTip), 1e-9)

	// Out-of-range indices and invalid snapshots degrade to zero.
	assert.Zero(t, snap.Distance(-1, IndexTip))
	assert.Zero(t, snap.Distance(ThumbTip, NumLandmarks))
	assert.Zero(t, Snapshot(nil).Distance(ThumbTip, IndexTip))
}

func TestSnapshot_Midpoint(t *testing.T) {
	t.Parallel()

	snap := make(Snapshot, NumLandmarks)
	snap[ThumbTip] = Point{X: 10, Y: 20}
	snap[IndexTip] = Point{X: 30, Y: 40}

	mid := snap.Midpoint(ThumbTip, IndexTip)
	assert.Equal(t, Point{X: 20, Y: 30}, mid)

	assert.Equal(t, Point{}, Snapshot(nil).Midpoint(ThumbTip, IndexTip))
}

func TestHand_SnapshotProjection(t *testing.T) {
	t.Parallel()

	var h Hand
	h.Points[Wrist] = NormalizedPoint{X: 0.5, Y: 0.5, Z: -0.1}
	h.Points[IndexTip] = NormalizedPoint{X: 0.25, Y: 0.75, Z: 0.3}

	snap := h.Snapshot(frameWidth, frameHeight)
	require.True(t, snap.Valid())

	assert.InDelta(t, 320.0, snap[Wrist].X, 1e-9)
	assert.InDelta(t, 240.0, snap[Wrist].Y, 1e-9)
	assert.InDelta(t, 160.0, snap[IndexTip].X, 1e-9)
	assert.InDelta(t, 360.0, snap[IndexTip].Y, 1e-9)

	var nilHand *Hand
	assert.Nil(t, nilHand.Snapshot(frameWidth, frameHeight))
}

func TestSelectHand(t *testing.T) {
	t.Parallel()

	hands := []Hand{OKHand(), OpenPalmHand()}

	snap := SelectHand(hands, 0, frameWidth, frameHeight)
	require.True(t, snap.Valid())

	// Out-of-range indices produce the "no hand" sentinel.
	assert.Nil(t, SelectHand(hands, 2, frameWidth, frameHeight))
	assert.Nil(t, SelectHand(hands, -1, frameWidth, frameHeight))
	assert.Nil(t, SelectHand(nil, 0, frameWidth, frameHeight))
}

func TestMockDetector(t *testing.T) {
	t.Parallel()

	mock := NewMockDetector()

	hands, err := mock.Detect(nil)
	require.NoError(t, err)
	assert.Empty(t, hands)

	mock.SetHands([]Hand{FistHand()})
	hands, err = mock.Detect(nil)
	require.NoError(t, err)
	require.Len(t, hands, 1)
	assert.Equal(t, "Right", hands[0].Handedness)

	wantErr := errors.New("detector offline")
	mock.SetError(wantErr)
	_, err = mock.Detect(nil)
	require.ErrorIs(t, err, wantErr)

	require.NoError(t, mock.Close())
}

func TestFixtures_ProjectToValidSnapshots(t *testing.T) {
	t.Parallel()

	fixtures := map[string]Hand{
		"volume":    VolumeControlHand(),
		"ok":        OKHand(),
		"peace":     PeaceHand(),
		"fist":      FistHand(),
		"thumbDown": ThumbDownHand(),
		"openPalm":  OpenPalmHand(),
		"spread":    SpreadHand(),
	}

	for name, hand := range fixtures {
		snap := hand.Snapshot(frameWidth, frameHeight)
		require.True(t, snap.Valid(), "fixture %s", name)
	}

	// The OK fixture's pinch must close within the default 60px threshold.
	ok := OKHand().Snapshot(frameWidth, frameHeight)
	assert.Less(t, ok.Distance(ThumbTip, IndexTip), 60.0)

	// The spread fixture's adjacent tips must exceed the 50px threshold.
	spread := SpreadHand().Snapshot(frameWidth, frameHeight)
	assert.Greater(t, spread.Distance(IndexTip, MiddleTip), 50.0)
	assert.Greater(t, spread.Distance(MiddleTip, RingTip), 50.0)
}
