package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThat_HoldsDoesNothing(t *testing.T) {
	assert.NotPanics(t, func() { That(true, "never shown") })
}

func TestThat_ViolationPanicsInDevBuild(t *testing.T) {
	if !Enabled() {
		t.Skip("release build logs instead of panicking")
	}
	assert.PanicsWithValue(t, "invariant violated: teardown called 2 times", func() {
		That(false, "teardown called %d times", 2)
	})
}
