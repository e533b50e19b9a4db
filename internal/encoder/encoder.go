// Package encoder turns a payload into a QR module grid image of an exact
// pixel width, without a quiet zone.
package encoder

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/pkg/errors"
)

// ErrTooSmall is returned when the requested width is below one pixel per module.
var ErrTooSmall = errors.New("pixel width smaller than module count")

// Options controls the rendered grid.
type Options struct {
	PixelWidth int
	Dark       color.Color
	Light      color.Color
}

// Encoder renders payloads to module grid images.
type Encoder interface {
	Encode(payload string, opts Options) (image.Image, error)
}

// ByName returns the encoder registered under name; "" selects Matrix.
func ByName(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "matrix", "yeqown":
		return Matrix{}, nil
	case "standard":
		return Standard{}, nil
	case "skip2":
		return Skip2{}, nil
	default:
		return nil, errors.Errorf("unknown encoder %q", name)
	}
}

func (o Options) colors() (dark, light color.Color) {
	dark, light = o.Dark, o.Light
	if dark == nil {
		dark = color.Black
	}
	if light == nil {
		light = color.White
	}
	return dark, light
}

// rasterize paints a square module bitmap onto exactly PixelWidth pixels.
// Module edges are distributed so the grid has no gaps or overflow.
func rasterize(modules [][]bool, opts Options) (*image.NRGBA, error) {
	n := len(modules)
	if n == 0 {
		return nil, errors.New("empty module matrix")
	}
	pw := opts.PixelWidth
	if pw < n {
		return nil, errors.Wrapf(ErrTooSmall, "%d px for %d modules", pw, n)
	}

	dark, light := opts.colors()
	img := image.NewNRGBA(image.Rect(0, 0, pw, pw))
	draw.Draw(img, img.Bounds(), image.NewUniform(light), image.Point{}, draw.Src)

	ink := image.NewUniform(dark)
	for y, row := range modules {
		y0, y1 := y*pw/n, (y+1)*pw/n
		for x, set := range row {
			if !set {
				continue
			}
			x0, x1 := x*pw/n, (x+1)*pw/n
			draw.Draw(img, image.Rect(x0, y0, x1, y1), ink, image.Point{}, draw.Src)
		}
	}
	return img, nil
}
