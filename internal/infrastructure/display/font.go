package display

import (
	"bytes"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
	faceSourceErr  error
)

// Face returns a Go Regular face of the given pixel size. The font source is
// parsed once and shared.
func Face(size float64) (text.Face, error) {
	faceSourceOnce.Do(func() {
		faceSource, faceSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if faceSourceErr != nil {
		return nil, faceSourceErr
	}
	return &text.GoTextFace{Source: faceSource, Size: size}, nil
}
