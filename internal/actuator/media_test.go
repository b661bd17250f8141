package actuator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaKeys_Linux(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotArgs []string
	recorder := func(name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	media, err := newMediaKeys("linux", recorder)
	require.NoError(t, err)

	require.NoError(t, media.PlayPause())
	assert.Equal(t, "playerctl", gotName)
	assert.Equal(t, []string{"play-pause"}, gotArgs)

	require.NoError(t, media.NextTrack())
	assert.Equal(t, []string{"next"}, gotArgs)

	require.NoError(t, media.PrevTrack())
	assert.Equal(t, []string{"previous"}, gotArgs)
}

func TestMediaKeys_Darwin(t *testing.T) {
	t.Parallel()

	var gotName string
	recorder := func(name string, args ...string) error {
		gotName = name
		return nil
	}

	media, err := newMediaKeys("darwin", recorder)
	require.NoError(t, err)

	require.NoError(t, media.PlayPause())
	assert.Equal(t, "osascript", gotName)
}

func TestMediaKeys_UnsupportedPlatform(t *testing.T) {
	t.Parallel()

	_, err := newMediaKeys("windows", nil)
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestMediaKeys_CommandFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("no player running")
	media, err := newMediaKeys("linux", func(string, ...string) error { return wantErr })
	require.NoError(t, err)

	assert.ErrorIs(t, media.PlayPause(), wantErr)
	assert.ErrorIs(t, media.NextTrack(), wantErr)
	assert.ErrorIs(t, media.PrevTrack(), wantErr)
}
