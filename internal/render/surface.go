package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Surface is the part of a gg drawing context the engine paints with.
type Surface interface {
	Width() int
	Height() int
	SetColor(c color.Color)
	SetLineWidth(lineWidth float64)
	SetFontFace(fontFace font.Face)
	DrawRectangle(x, y, w, h float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	ClosePath()
	Fill()
	FillPreserve()
	Stroke()
	MeasureString(s string) (w, h float64)
	DrawStringAnchored(s string, x, y, ax, ay float64)
	DrawImage(im image.Image, x, y int)
	Image() image.Image
}

var _ Surface = (*gg.Context)(nil)

func newSurface(width, height int) *gg.Context {
	return gg.NewContext(width, height)
}

func fillRect(s Surface, r Rect, c color.Color) {
	s.SetColor(c)
	s.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.Fill()
}
