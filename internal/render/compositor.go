package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/cristianadrielbraun/qrframe/internal/encoder"
)

// LogoPlacement is where the logo and the opaque patch behind it go.
type LogoPlacement struct {
	Image Rect
	Patch Rect
}

func encodeGrid(enc encoder.Encoder, payload string, g *Geometry, p palette) (image.Image, error) {
	grid, err := enc.Encode(payload, encoder.Options{
		PixelWidth: g.GridPixels(),
		Dark:       p.dark,
		Light:      p.light,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode payload")
	}
	return grid, nil
}

// drawGrid clears the QR box to the light color and blits the module grid
// at the inset grid origin.
func drawGrid(s Surface, grid image.Image, g *Geometry, p palette) {
	fillRect(s, g.QR, p.light)
	s.DrawImage(grid, int(math.Round(g.Grid.X)), int(math.Round(g.Grid.Y)))
}

// PlaceLogo centers a srcW x srcH logo on box. Logos larger than
// box/LogoFraction on either side are scaled down keeping their ratio.
func PlaceLogo(box Rect, srcW, srcH float64, layout Layout) LogoPlacement {
	w, h := srcW, srcH
	maxSide := box.W / layout.LogoFraction
	if longest := math.Max(w, h); longest > maxSide {
		scale := maxSide / longest
		w *= scale
		h *= scale
	}

	cx, cy := box.Center()
	img := Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
	padX, padY := w/layout.LogoPaddingFraction, h/layout.LogoPaddingFraction
	return LogoPlacement{
		Image: img,
		Patch: Rect{X: img.X - padX, Y: img.Y - padY, W: w + 2*padX, H: h + 2*padY},
	}
}

// drawLogo paints the patch, then the resampled logo on top of it.
func drawLogo(s Surface, logo image.Image, pl LogoPlacement, light color.Color) {
	fillRect(s, pl.Patch, light)

	w := max(1, int(math.Round(pl.Image.W)))
	h := max(1, int(math.Round(pl.Image.H)))
	b := logo.Bounds()
	if b.Dx() != w || b.Dy() != h {
		logo = imaging.Resize(logo, w, h, imaging.Lanczos)
	}
	s.DrawImage(logo, int(math.Round(pl.Image.X)), int(math.Round(pl.Image.Y)))
}
