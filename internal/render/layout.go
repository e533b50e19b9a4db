package render

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// CaptionLine is a fitted caption line and the top-left corner of its text.
type CaptionLine struct {
	FittedLine
	X, Y float64
}

// TitleBadge is the highlighted rectangle behind the title and its text origin.
type TitleBadge struct {
	FittedLine
	Badge        Rect
	TextX, TextY float64
}

// Geometry is the computed position of every element of one render.
type Geometry struct {
	Width     float64
	Margin    float64
	InnerSize float64
	Framed    bool
	Style     FrameStyle
	Position  Position

	PadX, PadTop, PadBottom float64

	CanvasWidth  int
	CanvasHeight int

	// Frame is the requested-width square plus the caption block; Border is
	// the path stroked around it, inset by half the line width.
	Frame     Rect
	Border    Rect
	LineWidth float64

	CaptionBlock float64
	Captions     []CaptionLine
	Title        *TitleBadge

	// QR is the box the grid is centered in; Grid is the scaled module area.
	QR   Rect
	Grid Rect
}

// GridPixels is the edge length handed to the encoder.
func (g *Geometry) GridPixels() int {
	return int(math.Round(g.Grid.W))
}

// Plan computes the geometry of req. fit measures text for size selection,
// ink measures the bold face the text is drawn with.
func Plan(req Request, layout Layout, fit, ink Measurer) (*Geometry, error) {
	if req.Width <= 0 {
		return nil, errors.Wrapf(ErrLayoutOverflow, "width %d", req.Width)
	}

	width := float64(req.Width)
	margin := width / layout.MarginDivisor
	g := &Geometry{
		Width:     width,
		Margin:    margin,
		InnerSize: width,
		Style:     StyleNone,
		Position:  PositionBottom,
	}

	frame := req.Frame
	if frame != nil {
		style, err := frame.style()
		if err != nil {
			return nil, err
		}
		pos, err := frame.position()
		if err != nil {
			return nil, err
		}
		g.Framed, g.Style, g.Position = true, style, pos
		g.InnerSize = width - 2*margin
	}
	if g.InnerSize <= 0 || math.Round(g.InnerSize*layout.GridScale) < 1 {
		return nil, errors.Wrapf(ErrLayoutOverflow, "width %d leaves inner size %.2f", req.Width, g.InnerSize)
	}

	height := width
	var captions []FittedLine
	if g.Framed && frame.Text != "" {
		var err error
		if captions, err = Fit(g.InnerSize, frame.Text, layout.FontSizes, fit); err != nil {
			return nil, errors.Wrap(err, "caption")
		}
		g.CaptionBlock = layout.TextGap
		for _, l := range captions {
			g.CaptionBlock += l.Size + layout.TextGap
		}
		height = width + g.CaptionBlock
	}

	pad := 0.0
	if layout.IncludeOuterPadding {
		pad = layout.OuterPadding
	}
	g.PadX, g.PadTop, g.PadBottom = pad, pad, pad
	canvasWidth := width + 2*pad

	if g.Framed && layout.SupportsTitle && strings.TrimSpace(frame.Title) != "" {
		title, err := planTitle(frame.Title, canvasWidth, height, layout, fit, g)
		if err != nil {
			return nil, errors.Wrap(err, "title")
		}
		g.Title = title
	}

	g.Frame = Rect{X: pad, Y: g.PadTop, W: width, H: height}
	g.LineWidth = width / layout.LineWidthDivisor
	g.Border = Rect{
		X: g.Frame.X + g.LineWidth/2,
		Y: g.Frame.Y + g.LineWidth/2,
		W: width - g.LineWidth,
		H: height - g.LineWidth,
	}

	if len(captions) > 0 {
		lines, err := placeCaptions(captions, g, layout, ink)
		if err != nil {
			return nil, errors.Wrap(err, "caption")
		}
		g.Captions = lines
	}

	g.QR = Rect{X: pad, Y: g.PadTop, W: g.InnerSize, H: g.InnerSize}
	if g.Framed {
		g.QR.X += margin
		g.QR.Y += margin
		if g.Position == PositionTop {
			g.QR.Y += height - width
		}
	}
	side := g.InnerSize * layout.GridScale
	inset := (g.InnerSize - side) / 2
	g.Grid = Rect{X: g.QR.X + inset, Y: g.QR.Y + inset, W: side, H: side}

	g.CanvasWidth = int(math.Ceil(canvasWidth))
	g.CanvasHeight = int(math.Ceil(g.PadTop + height + g.PadBottom))
	return g, nil
}

// planTitle sizes the badge and widens the padding band on the caption side
// when the badge does not fit in it.
func planTitle(text string, canvasWidth, frameHeight float64, layout Layout, fit Measurer, g *Geometry) (*TitleBadge, error) {
	text = strings.Join(strings.Fields(text), " ")
	lines, err := Fit(canvasWidth/2, text, layout.FontSizes, fit)
	if err != nil {
		return nil, err
	}

	line := lines[0]
	badgeH := line.Size + layout.TitlePaddingY
	band := math.Max(g.PadTop, badgeH+2*layout.TextGap)
	badge := Rect{
		W: line.Width + layout.TitlePaddingX,
		H: badgeH,
	}
	badge.X = (canvasWidth - badge.W) / 2

	if g.Position == PositionTop {
		g.PadTop = band
		badge.Y = (band - badgeH) / 2
	} else {
		g.PadBottom = band
		badge.Y = g.PadTop + frameHeight + (band-badgeH)/2
	}

	return &TitleBadge{
		FittedLine: line,
		Badge:      badge,
		TextX:      badge.X + layout.TitlePaddingX/2,
		TextY:      badge.Y + layout.TitlePaddingY/2,
	}, nil
}

func placeCaptions(fitted []FittedLine, g *Geometry, layout Layout, ink Measurer) ([]CaptionLine, error) {
	top := g.Frame.Y + g.Width - layout.TextGap
	if g.Position == PositionTop {
		top = g.Frame.Y + g.Margin
	}

	lines := make([]CaptionLine, 0, len(fitted))
	for _, l := range fitted {
		w, err := ink.Measure(l.Text, l.Size)
		if err != nil {
			return nil, err
		}
		lines = append(lines, CaptionLine{
			FittedLine: l,
			X:          g.Frame.X + (g.Width-w)/2,
			Y:          top,
		})
		top += l.Size + layout.TextGap
	}
	return lines, nil
}
