package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Track = (*Player)(nil)
var _ Track = (*Silent)(nil)

func TestSilent(t *testing.T) {
	s := &Silent{}

	require.NoError(t, s.Play())
	assert.True(t, s.IsPlaying())

	s.SetVolume(0.6)
	assert.Equal(t, 0.6, s.Volume())

	require.NoError(t, s.Seek(3*time.Second))
	assert.Equal(t, 3*time.Second, s.Position())

	s.Pause()
	assert.False(t, s.IsPlaying())
}
