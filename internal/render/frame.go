package render

// drawFrame paints the frame background and, for square and rounded styles,
// fills and strokes the border path.
func drawFrame(s Surface, g *Geometry, p palette, radius float64) {
	if g.Style == StyleNone {
		fillRect(s, g.Frame, p.background)
		return
	}

	if g.Style == StyleSquare {
		radius = 0
	}
	traceRoundedRect(s, g.Border, radius)
	s.SetColor(p.background)
	s.FillPreserve()
	s.SetColor(p.border)
	s.SetLineWidth(g.LineWidth)
	s.Stroke()
}

// traceRoundedRect builds a closed path of four edges joined by one
// quadratic curve per corner.
func traceRoundedRect(s Surface, r Rect, radius float64) {
	left, top := r.X, r.Y
	right, bottom := r.X+r.W, r.Y+r.H

	s.MoveTo(left+radius, top)
	s.LineTo(right-radius, top)
	s.QuadraticTo(right, top, right, top+radius)
	s.LineTo(right, bottom-radius)
	s.QuadraticTo(right, bottom, right-radius, bottom)
	s.LineTo(left+radius, bottom)
	s.QuadraticTo(left, bottom, left, bottom-radius)
	s.LineTo(left, top+radius)
	s.QuadraticTo(left, top, left+radius, top)
	s.ClosePath()
}
