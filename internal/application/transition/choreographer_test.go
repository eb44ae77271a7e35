package transition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/application/state"
	"github.com/younwookim/descent/internal/domain/animator"
	"github.com/younwookim/descent/internal/infrastructure/config"
	"github.com/younwookim/descent/internal/infrastructure/display"
	"github.com/younwookim/descent/internal/infrastructure/tween"
)

const screenH = 600

// fakeScene is a test double for scene.Scene
type fakeScene struct {
	ord     state.Ordinal
	caps    scene.Capability
	root    *display.Node
	initErr error

	inits     int
	intros    int
	teardowns int
	log       *[]string
}

func newFake(ord state.Ordinal, caps scene.Capability, log *[]string) *fakeScene {
	return &fakeScene{ord: ord, caps: caps, root: display.NewContainer(ord.String()), log: log}
}

func (f *fakeScene) Ordinal() state.Ordinal { return f.ord }
func (f *fakeScene) Capabilities() scene.Capability { return f.caps }
func (f *fakeScene) Root() *display.Node { return f.root }
func (f *fakeScene) Params() *animator.Params { return animator.NewParams(nil) }
func (f *fakeScene) Active() bool { return f.inits > 0 && f.teardowns == 0 }
func (f *fakeScene) Update(float64) {}
func (f *fakeScene) SetTrigger(func(scene.Trigger)) {}

func (f *fakeScene) Init() error {
	if f.initErr != nil {
		return f.initErr
	}
	f.inits++
	return nil
}

func (f *fakeScene) PlayIntro() {
	f.intros++
	*f.log = append(*f.log, "intro "+f.ord.String())
}

func (f *fakeScene) Teardown() {
	f.teardowns++
	f.root.Dispose()
	*f.log = append(*f.log, "teardown "+f.ord.String())
}

type rig struct {
	stage  *display.Node
	tweens *tween.Runner
	state  *state.Orchestrator
	c      *Choreographer
	log    []string
}

func newRig() *rig {
	r := &rig{
		stage:  display.NewContainer("stage"),
		tweens: tween.NewRunner(),
		state:  state.New(),
	}
	r.c = New(r.stage, r.tweens, r.state, screenH)
	return r
}

func (r *rig) commit(s scene.Scene) {
	r.state.SetCurrent(s.Ordinal())
	r.log = append(r.log, "commit "+s.Ordinal().String())
}

func (r *rig) step(d float64) {
	const dt = 0.1
	for range int(d/dt + 0.5) {
		r.tweens.Update(dt)
	}
}

func (r *rig) present(s *fakeScene) {
	r.stage.AddChild(s.root)
	s.inits = 1
	r.state.SetCurrent(s.ord)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Crossfade", Crossfade.String())
	assert.Equal(t, "Slide", Slide.String())
	assert.Equal(t, "FadeThrough", FadeThrough.String())
	assert.Equal(t, "Unknown", Kind(9).String())
}

func TestRecords_FromConfig(t *testing.T) {
	cfg := config.Default().Transitions

	cf := CrossfadeRecord(cfg.Crossfade)
	assert.Equal(t, Crossfade, cf.Kind)
	assert.Equal(t, 1.2, cf.Duration)
	assert.Equal(t, 0.5, cf.Dim)

	sl := SlideRecord(cfg.Slide)
	assert.Equal(t, Slide, sl.Kind)
	assert.Equal(t, 1.5, sl.Duration)

	ft := FadeThroughRecord(cfg.Restart)
	assert.Equal(t, FadeThrough, ft.Kind)
	assert.Equal(t, 1.0, ft.exit())
	assert.Equal(t, 1.5, ft.Duration)
}

func TestPresent_CommitsAndPlaysIntro(t *testing.T) {
	r := newRig()
	s := newFake(state.OrdinalIntro, scene.CapIntro, &r.log)

	require.NoError(t, r.c.Present(s, r.commit))

	assert.Equal(t, 1, s.inits)
	assert.Equal(t, []string{"intro Intro", "commit Intro"}, r.log)
	assert.Equal(t, r.stage, s.root.Parent)
	assert.False(t, r.state.Transitioning())
}

func TestPresent_InitFailure(t *testing.T) {
	r := newRig()
	s := newFake(state.OrdinalIntro, scene.CapIntro, &r.log)
	s.initErr = scene.ErrMissingTexture

	err := r.c.Present(s, r.commit)

	assert.ErrorIs(t, err, scene.ErrMissingTexture)
	assert.Equal(t, 1, s.teardowns)
	assert.Equal(t, state.OrdinalNone, r.state.CurrentOrdinal())
}

func TestTransition_Crossfade(t *testing.T) {
	r := newRig()
	out := newFake(state.OrdinalIntro, scene.CapIntro, &r.log)
	in := newFake(state.OrdinalDescent, scene.CapGesture, &r.log)
	r.present(out)

	done, err := r.c.Transition(Record{Outgoing: out, Incoming: in, Kind: Crossfade, Duration: 1.2, Dim: 0.5}, r.commit)
	require.NoError(t, err)

	assert.True(t, r.state.Transitioning())
	assert.Equal(t, 1, in.inits)
	assert.Equal(t, 0.0, in.root.Alpha)
	assert.Equal(t, r.stage, in.root.Parent)
	require.NotNil(t, r.c.Pending())

	r.step(0.6)
	assert.InDelta(t, 0.5, in.root.Alpha, 1e-6)
	assert.InDelta(t, 0.75, out.root.Alpha, 1e-6)
	assert.Equal(t, state.OrdinalIntro, r.state.CurrentOrdinal())
	assert.Empty(t, r.log)

	r.step(0.6)
	select {
	case <-done:
	default:
		t.Fatal("transition did not complete")
	}
	assert.Equal(t, []string{"teardown Intro", "commit Descent"}, r.log)
	assert.Equal(t, 1.0, in.root.Alpha)
	assert.Equal(t, state.OrdinalDescent, r.state.CurrentOrdinal())
	assert.False(t, r.state.Transitioning())
	assert.Nil(t, r.c.Pending())
	assert.Equal(t, 1, r.stage.NumChildren())
}

func TestTransition_CrossfadePlaysIntroOnCompletion(t *testing.T) {
	r := newRig()
	out := newFake(state.OrdinalResolution, 0, &r.log)
	in := newFake(state.OrdinalIntro, scene.CapIntro, &r.log)
	r.present(out)

	_, err := r.c.Transition(Record{Outgoing: out, Incoming: in, Kind: Crossfade, Duration: 1}, r.commit)
	require.NoError(t, err)

	r.step(0.5)
	assert.Equal(t, 0, in.intros)
	r.step(0.5)
	assert.Equal(t, []string{"intro Intro", "teardown Resolution", "commit Intro"}, r.log)
}

func TestTransition_SlideMovesBothRoots(t *testing.T) {
	r := newRig()
	out := newFake(state.OrdinalDescent, scene.CapGesture, &r.log)
	in := newFake(state.OrdinalResolution, scene.CapGesture, &r.log)
	r.present(out)

	rec := SlideRecord(config.SlideConfig{Duration: 1.5})
	rec.Outgoing, rec.Incoming = out, in
	_, err := r.c.Transition(rec, r.commit)
	require.NoError(t, err)
	assert.Equal(t, float64(screenH), in.root.Y)
	assert.Equal(t, 1.0, in.root.Alpha)

	r.step(0.7)
	assert.Greater(t, in.root.Y, 0.0)
	assert.Less(t, out.root.Y, 0.0)
	assert.InDelta(t, float64(screenH), in.root.Y-out.root.Y, 1e-3)

	r.step(0.8)
	assert.Equal(t, 0.0, in.root.Y)
	assert.Equal(t, []string{"teardown Descent", "commit Resolution"}, r.log)
}

func TestTransition_FadeThroughStartsEntryAfterExit(t *testing.T) {
	r := newRig()
	out := newFake(state.OrdinalResolution, scene.CapGesture, &r.log)
	in := newFake(state.OrdinalIntro, scene.CapIntro, &r.log)
	r.present(out)

	rec := FadeThroughRecord(config.RestartConfig{FadeOut: 1.0, FadeIn: 1.5})
	rec.Outgoing, rec.Incoming = out, in
	_, err := r.c.Transition(rec, r.commit)
	require.NoError(t, err)

	r.step(0.5)
	assert.InDelta(t, 0.5, out.root.Alpha, 1e-6)
	assert.Equal(t, 0.0, in.root.Alpha)
	assert.Equal(t, 0, in.intros)

	r.step(0.6)
	assert.Equal(t, 0.0, out.root.Alpha)
	assert.Equal(t, 1, in.intros, "intro starts with the entry")
	assert.Greater(t, in.root.Alpha, 0.0)

	r.step(1.5)
	assert.Equal(t, []string{"intro Intro", "teardown Resolution", "commit Intro"}, r.log)
	assert.Equal(t, 1.0, in.root.Alpha)
}

func TestTransition_Busy(t *testing.T) {
	r := newRig()
	out := newFake(state.OrdinalIntro, scene.CapIntro, &r.log)
	in := newFake(state.OrdinalDescent, scene.CapGesture, &r.log)
	other := newFake(state.OrdinalResolution, 0, &r.log)
	r.present(out)

	_, err := r.c.Transition(Record{Outgoing: out, Incoming: in, Kind: Crossfade, Duration: 1}, r.commit)
	require.NoError(t, err)

	_, err = r.c.Transition(Record{Outgoing: out, Incoming: other, Kind: Slide, Duration: 1}, r.commit)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 0, other.inits, "a rejected transition never touches its scenes")
	assert.Nil(t, other.root.Parent)

	r.step(1)
	assert.Equal(t, []string{"teardown Intro", "commit Descent"}, r.log, "one commit only")
}

func TestTransition_InitFailureKeepsCurrent(t *testing.T) {
	r := newRig()
	out := newFake(state.OrdinalIntro, scene.CapIntro, &r.log)
	in := newFake(state.OrdinalDescent, scene.CapGesture, &r.log)
	in.initErr = errors.New("boom")
	r.present(out)

	rec := CrossfadeRecord(config.CrossfadeConfig{Duration: 1.2, OutgoingAlpha: 0.5})
	rec.Outgoing, rec.Incoming = out, in
	_, err := r.c.Transition(rec, r.commit)

	assert.EqualError(t, err, "init Descent: boom")
	assert.Equal(t, []string{"teardown Descent"}, r.log)
	assert.False(t, r.state.Transitioning())
	assert.Equal(t, state.OrdinalIntro, r.state.CurrentOrdinal())
	assert.Equal(t, 1.0, out.root.Alpha)
	assert.Equal(t, 0, r.tweens.Len())
}
