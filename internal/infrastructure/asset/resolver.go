// Package asset resolves image URIs into ebiten textures.
package asset

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders
	_ "image/png"
	"io/fs"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// Resolver turns URIs into texture handles. Resolution fails as a whole if
// any URI cannot be resolved.
type Resolver interface {
	Resolve(ctx context.Context, uris []string) (map[string]*ebiten.Image, error)
}

// FSResolver reads and decodes images from a filesystem. URIs are slash
// separated paths; a leading "/" is ignored.
type FSResolver struct {
	fsys  fs.FS
	limit int
}

// NewFSResolver creates a resolver over fsys decoding up to four files at a
// time.
func NewFSResolver(fsys fs.FS) *FSResolver {
	return &FSResolver{fsys: fsys, limit: 4}
}

// Resolve implements Resolver.
func (r *FSResolver) Resolve(ctx context.Context, uris []string) (map[string]*ebiten.Image, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]*ebiten.Image, len(uris))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for _, uri := range uris {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Decode(r.fsys, uri)
			if err != nil {
				return err
			}
			tex := ebiten.NewImageFromImage(img)
			mu.Lock()
			out[uri] = tex
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode reads and decodes one image.
func Decode(fsys fs.FS, uri string) (image.Image, error) {
	name := strings.TrimPrefix(uri, "/")
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", uri, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", uri, err)
	}
	return img, nil
}
