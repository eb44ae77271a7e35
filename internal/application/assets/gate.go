// Package assets gates narrative entry on texture resolution.
//
// Resolution runs on a background goroutine. Its result is applied on the
// frame thread by Poll, so the ready flag and the indicator only ever change
// during a frame.
package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/younwookim/descent/internal/application/scene"
	"github.com/younwookim/descent/internal/infrastructure/asset"
)

// ErrUnavailable marks the terminal failure to resolve the narrative's
// assets.
var ErrUnavailable = errors.New("assets unavailable")

// Status is what the readiness indicator shows.
type Status uint8

const (
	StatusLoading Status = iota
	StatusReady
	StatusUnavailable
)

// String returns the label shown on the entry button
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "LOADING..."
	case StatusReady:
		return "CLICK START"
	case StatusUnavailable:
		return "ERROR loading files"
	default:
		return "Unknown"
	}
}

// Indicator displays the gate's status. The gate never renders itself.
type Indicator interface {
	SetStatus(s Status)
}

type result struct {
	textures map[string]*ebiten.Image
	err      error
}

// Gate tracks whether every required texture has resolved.
type Gate struct {
	resolver  asset.Resolver
	indicator Indicator

	pending chan result
	done    chan struct{}

	ready    bool
	err      error
	textures scene.TextureMap
}

// NewGate creates a gate. indicator may be nil.
func NewGate(resolver asset.Resolver, indicator Indicator) *Gate {
	return &Gate{
		resolver:  resolver,
		indicator: indicator,
		done:      make(chan struct{}),
	}
}

// Load starts resolving uris in the background. Only the first call has an
// effect.
func (g *Gate) Load(ctx context.Context, uris []string) {
	if g.pending != nil {
		return
	}
	g.pending = make(chan result, 1)
	g.show(StatusLoading)
	log.Info().Int("count", len(uris)).Msg("resolving assets")

	go func() {
		textures, err := g.resolver.Resolve(ctx, uris)
		g.pending <- result{textures: textures, err: err}
		close(g.done)
	}()
}

// Done is closed once resolution has finished, successfully or not. The
// outcome is not visible until the next Poll.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Poll applies a finished resolution. It reports true exactly once, in the
// call that turns the gate ready.
func (g *Gate) Poll() bool {
	if g.pending == nil || g.ready || g.err != nil {
		return false
	}
	select {
	case r := <-g.pending:
		if r.err != nil {
			g.err = fmt.Errorf("%w: %w", ErrUnavailable, r.err)
			log.Error().Err(r.err).Msg("failed to resolve assets")
			g.show(StatusUnavailable)
			return false
		}
		g.textures = scene.TextureMap(r.textures)
		g.ready = true
		log.Info().Int("count", len(r.textures)).Msg("assets resolved")
		g.show(StatusReady)
		return true
	default:
		return false
	}
}

// Ready reports whether every texture resolved. It never reverts.
func (g *Gate) Ready() bool {
	return g.ready
}

// Err returns the terminal failure, wrapping ErrUnavailable, or nil.
func (g *Gate) Err() error {
	return g.err
}

// Textures returns the resolved textures, nil before the gate is ready.
func (g *Gate) Textures() scene.TextureMap {
	return g.textures
}

// Lookup implements scene.Textures.
func (g *Gate) Lookup(uris ...string) (*ebiten.Image, string, bool) {
	return g.textures.Lookup(uris...)
}

func (g *Gate) show(s Status) {
	if g.indicator != nil {
		g.indicator.SetStatus(s)
	}
}
