package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holdConfig() Config {
	return Config{Mode: ModeHold, RiseRate: 0.9, DecayRate: 1.8}
}

func clickConfig() Config {
	return Config{Mode: ModeClick, Increment: 0.30, DecayRate: 0.05}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIdle, "Idle"},
		{StateArmed, "Armed"},
		{StateCompleting, "Completing"},
		{StateCompleted, "Completed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestHold_AccumulatesWhileArmedOnTarget(t *testing.T) {
	m := New(holdConfig(), nil)
	m.PointerDown()
	assert.Equal(t, StateArmed, m.State())

	for i := 0; i < 4; i++ {
		m.Update(0.25, true)
	}

	assert.InDelta(t, 0.9, m.Progress(), 1e-9, "min(1, R_up*t) with t=1s")
	assert.False(t, m.Completed())
}

func TestHold_DecaysWhenReleasedOrOffTarget(t *testing.T) {
	tests := []struct {
		name     string
		armed    bool
		onTarget bool
	}{
		{"released", false, true},
		{"armed off target", true, false},
		{"released off target", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(holdConfig(), nil)
			m.PointerDown()
			m.Update(0.5, true) // 0.45
			if !tt.armed {
				m.PointerUp()
			}

			m.Update(0.125, tt.onTarget)
			assert.InDelta(t, 0.45-1.8*0.125, m.Progress(), 1e-9)

			m.Update(1, tt.onTarget)
			assert.Equal(t, 0.0, m.Progress(), "max(0, p - R_down*t')")
		})
	}
}

func TestHold_CompletesExactlyOnce(t *testing.T) {
	fired := 0
	m := New(holdConfig(), func() { fired++ })
	m.PointerDown()

	for i := 0; i < 20; i++ {
		m.Update(0.1, true)
	}

	assert.Equal(t, 1, fired)
	assert.True(t, m.Completed())
	assert.Equal(t, StateCompleted, m.State())
	assert.Equal(t, 1.0, m.Progress())
}

func TestCompleted_PinsProgressAndIgnoresInput(t *testing.T) {
	fired := 0
	m := New(holdConfig(), func() { fired++ })
	m.PointerDown()
	m.Update(2, true)
	require.True(t, m.Completed())

	m.PointerUp()
	m.Update(10, false)
	m.PointerDown()
	m.Update(10, true)

	assert.Equal(t, 1.0, m.Progress())
	assert.Equal(t, 1, fired)
	assert.False(t, m.Armed())
}

func TestCompleting_StateVisibleInsideCallback(t *testing.T) {
	var m *Machine
	var during State
	m = New(holdConfig(), func() {
		during = m.State()
		// Reentrant input while completing is ignored.
		m.PointerDown()
		m.Update(1, false)
	})
	m.PointerDown()
	m.Update(2, true)

	assert.Equal(t, StateCompleting, during)
	assert.Equal(t, StateCompleted, m.State())
	assert.Equal(t, 1.0, m.Progress())
}

func TestClick_FourClicksComplete(t *testing.T) {
	fired := 0
	m := New(clickConfig(), func() { fired++ })

	for i := 0; i < 3; i++ {
		m.Click()
		m.Update(0, false)
	}
	assert.InDelta(t, 0.9, m.Progress(), 1e-9)
	assert.False(t, m.Completed())

	m.Click()
	m.Update(0, false)

	assert.True(t, m.Completed())
	assert.Equal(t, 1.0, m.Progress(), "0.30*4 = 1.20 clamps to 1")
	assert.Equal(t, 1, fired)
}

func TestClick_ClicksBetweenFramesCoalesceIntoOneUpdate(t *testing.T) {
	m := New(clickConfig(), nil)
	m.Click()
	m.Click()
	assert.Equal(t, 0.0, m.Progress(), "increments apply on the next update")

	m.Update(0, false)
	assert.InDelta(t, 0.6, m.Progress(), 1e-9)
}

func TestClick_DecaysBackTowardZeroWithoutCompleting(t *testing.T) {
	fired := 0
	m := New(clickConfig(), func() { fired++ })
	m.Click()
	m.Update(0, false)

	for i := 0; i < 8; i++ {
		m.Update(1, false)
	}

	assert.Equal(t, 0.0, m.Progress())
	assert.Equal(t, 0, fired)
	assert.False(t, m.Completed())
}

func TestClick_DecayAppliesBeforeIncrementInTheSameFrame(t *testing.T) {
	// Decay-first: 0.9 - 0.05 + 0.30 clamps to 1 and completes.
	// Increment-first would clamp to 1 and then decay to 0.95.
	m := New(clickConfig(), nil)
	for i := 0; i < 3; i++ {
		m.Click()
	}
	m.Update(0, false)
	require.InDelta(t, 0.9, m.Progress(), 1e-9)

	m.Click()
	m.Update(1, false)

	assert.True(t, m.Completed())
}

func TestClick_DecayDoesNotGoNegativeBeforeIncrement(t *testing.T) {
	m := New(clickConfig(), nil)
	m.Click()
	m.Update(10, false)

	assert.InDelta(t, 0.30, m.Progress(), 1e-9)
}

func TestClick_IgnoredInHoldMode(t *testing.T) {
	m := New(holdConfig(), nil)
	m.Click()
	m.Update(0, false)
	assert.Equal(t, 0.0, m.Progress())
}

func TestNew_ThresholdDefaultsToOne(t *testing.T) {
	m := New(Config{Mode: ModeClick, Increment: 0.5, Threshold: 0}, nil)
	m.Click()
	m.Update(0, false)
	assert.False(t, m.Completed())
	m.Click()
	m.Update(0, false)
	assert.True(t, m.Completed())
}
