package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinal_String(t *testing.T) {
	tests := []struct {
		ordinal  Ordinal
		expected string
	}{
		{OrdinalNone, "None"},
		{OrdinalIntro, "Intro"},
		{OrdinalDescent, "Descent"},
		{OrdinalResolution, "Resolution"},
		{Ordinal(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ordinal.String())
		})
	}
}

func TestOrdinalConstants(t *testing.T) {
	// Scene ordinals are 1-based
	assert.Equal(t, Ordinal(1), OrdinalIntro)
	assert.Equal(t, Ordinal(2), OrdinalDescent)
	assert.Equal(t, Ordinal(3), OrdinalResolution)
}

func TestOrchestrator_Transition(t *testing.T) {
	s := New()
	assert.False(t, s.Transitioning())

	assert.True(t, s.BeginTransition())
	assert.True(t, s.Transitioning())
	assert.False(t, s.BeginTransition(), "second begin must be rejected")

	s.EndTransition()
	assert.False(t, s.Transitioning())
	assert.True(t, s.BeginTransition())
}

func TestOrchestrator_StartedOnce(t *testing.T) {
	s := New()
	assert.True(t, s.MarkStarted())
	assert.False(t, s.MarkStarted())
	assert.True(t, s.Started())
}

func TestOrchestrator_LoadedIsMonotonic(t *testing.T) {
	s := New()
	assert.False(t, s.ResourcesLoaded())
	s.MarkLoaded()
	s.MarkLoaded()
	assert.True(t, s.ResourcesLoaded())
}

func TestOrchestrator_Current(t *testing.T) {
	s := New()
	assert.Equal(t, OrdinalNone, s.CurrentOrdinal())
	s.SetCurrent(OrdinalDescent)
	assert.Equal(t, OrdinalDescent, s.CurrentOrdinal())
}
