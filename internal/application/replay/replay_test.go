package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/descent/internal/application/system"
)

func TestFrameInput_OmitsIdleFields(t *testing.T) {
	data, err := json.Marshal(FrameInput{F: 3, MX: 10, MY: 20})
	require.NoError(t, err)

	assert.JSONEq(t, `{"f":3,"mx":10,"my":20}`, string(data))
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: "1.0",
		Seed:    42,
		Frames: []FrameInput{
			{F: 0, MX: 100, MY: 100},
			{F: 1, MX: 110, MY: 95, P: true},
			{F: 2, MX: 120, MY: 90, R: true, WY: -1},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{MouseX: 100, MouseY: 100}, input)

	// Frame 1
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Pressed)
	assert.False(t, input.Released)

	// Frame 2
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Released)
	assert.Equal(t, -1.0, input.WheelY)

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrame(t *testing.T) {
	data := CreateTestReplayData(5, 100, 100)
	replayer := NewReplayer(data)

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
}

func TestReplayer_Reset(t *testing.T) {
	data := CreateTestReplayData(3, 100, 100)
	replayer := NewReplayer(data)

	for range 3 {
		replayer.GetInput()
	}
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	input, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.Equal(t, 100, input.MouseX)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, 200, 150)

	assert.Equal(t, "1.0", data.Version)
	assert.Equal(t, uint64(12345), data.Seed)
	assert.Equal(t, 60, len(data.Frames))

	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.Equal(t, 200, frame.MX)
		assert.Equal(t, 150, frame.MY)
	}
}

func TestRecorder_RecordFrame(t *testing.T) {
	rec := NewRecorder(7)
	rec.RecordFrame(system.InputState{MouseX: 1, MouseY: 2})
	rec.RecordFrame(system.InputState{MouseX: 3, MouseY: 4, Pressed: true})

	require.Equal(t, 2, rec.FrameCount())
	frames := rec.GetData().Frames
	assert.Equal(t, FrameInput{F: 1, MX: 3, MY: 4, P: true}, frames[1])

	rec.Stop()
	rec.RecordFrame(system.InputState{})
	assert.False(t, rec.IsRecording())
	assert.Equal(t, 2, rec.FrameCount())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(1)
	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.EqualError(t, err, "no frames to save")
}

func TestRecorder_RoundTrip(t *testing.T) {
	rec := NewRecorder(99)
	inputs := []system.InputState{
		{MouseX: 400, MouseY: 300},
		{MouseX: 410, MouseY: 300, Pressed: true},
		{MouseX: 410, MouseY: 300, Released: true},
		{MouseX: 410, MouseY: 300, WheelY: -1},
	}
	for _, in := range inputs {
		rec.RecordFrame(in)
	}

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), data.Seed)

	replayer := NewReplayer(*data)
	for i, want := range inputs {
		got, ok := replayer.GetInput()
		require.True(t, ok)
		assert.Equal(t, want, got, "frame %d", i)
	}
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadReplay(path)
	assert.ErrorContains(t, err, "failed to decode replay")
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}
