// Package assert reports programming invariant violations.
//
// Development builds panic so orchestrator bugs surface immediately.
// Builds tagged "release" log the violation and continue.
package assert

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// That fails when cond is false.
func That(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if enabled {
		panic("invariant violated: " + msg)
	}
	log.Error().Str("invariant", msg).Msg("invariant violated")
}

// Enabled reports whether violations panic in this build.
func Enabled() bool {
	return enabled
}
