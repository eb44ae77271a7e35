package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/application/scene/scenetest"
	"github.com/younwookim/descent/internal/application/state"
	"github.com/younwookim/descent/internal/infrastructure/input"
)

func newResolution(t *testing.T) (*Resolution, *scene.Env, *scenetest.Recorder) {
	t.Helper()
	env := scenetest.NewEnv()
	s := New(env)
	require.NoError(t, s.Init())
	rec := &scenetest.Recorder{}
	s.SetTrigger(rec.Fire)
	return s, env, rec
}

func click(env *scene.Env) {
	env.Input.Dispatch(input.Event{Kind: input.PointerDown, X: 100, Y: 100})
	env.Input.Dispatch(input.Event{Kind: input.PointerUp, X: 100, Y: 100})
}

func TestResolution_Identity(t *testing.T) {
	s, _, _ := newResolution(t)
	assert.Equal(t, state.OrdinalResolution, s.Ordinal())
	assert.True(t, s.Capabilities().Has(scene.CapGesture))
	// "MEMORY RESTORED" without its space
	assert.Len(t, s.Letters(), 14)
	assert.Equal(t, "M", s.Letters()[0].Text)
}

func TestResolution_FourClicksComplete(t *testing.T) {
	s, env, rec := newResolution(t)
	for range 4 {
		click(env)
	}
	scenetest.Step(env, s, 1.0/60)

	assert.True(t, s.Machine().Completed())
	assert.Equal(t, 1.0, s.Machine().Progress())
	assert.Empty(t, rec.Triggers)

	scenetest.Step(env, s, 2.1)
	assert.Equal(t, []scene.Trigger{scene.TriggerRestartRequested}, rec.Triggers)

	click(env)
	scenetest.Step(env, s, 3)
	assert.Len(t, rec.Triggers, 1)
}

func TestResolution_SingleClickDecays(t *testing.T) {
	s, env, rec := newResolution(t)
	click(env)
	scenetest.Step(env, s, 1.0/60)
	assert.InDelta(t, 0.3, s.Machine().Progress(), 1e-9)

	// 0.05/s decay empties 0.3 in 6s
	scenetest.Step(env, s, 7)
	assert.Equal(t, 0.0, s.Machine().Progress())
	assert.False(t, s.Machine().Completed())
	assert.Empty(t, rec.Triggers)
}

func TestResolution_LettersConverge(t *testing.T) {
	s, env, _ := newResolution(t)
	first := s.Letters()[0]
	scenetest.Step(env, s, 1.0/60)
	assert.NotEqual(t, 0.0, first.Y)

	for range 4 {
		click(env)
	}
	scenetest.Step(env, s, 1.0/60)
	scenetest.Step(env, s, 1.0/60)

	assert.Equal(t, 0.0, first.Rotation)
	assert.Equal(t, 1.0, first.Alpha)
	assert.InDelta(t, -float64(14)*45/2, first.X, 1e-9, "first letter sits at its slot once converged")
	assert.Equal(t, 0.0, first.Y)
}

func TestResolution_PlayIntroFadesLettersIn(t *testing.T) {
	s, env, _ := newResolution(t)
	s.PlayIntro()
	env.Tweens.Update(3)
	for _, l := range s.Letters() {
		assert.InDelta(t, 0.6, l.Alpha, 1e-9)
	}
}

func TestResolution_Teardown(t *testing.T) {
	s, env, rec := newResolution(t)
	click(env)
	s.Teardown()
	assert.Zero(t, env.Input.Listeners())

	assert.NotPanics(t, func() {
		for range 4 {
			click(env)
		}
		scenetest.Step(env, s, 3)
	})
	assert.False(t, s.Machine().Completed())
	assert.Empty(t, rec.Triggers)
}
