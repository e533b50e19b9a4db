package render

import (
	"image"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceLogoKeepsSmallLogos(t *testing.T) {
	box := Rect{X: 15, Y: 15, W: 270, H: 270}
	pl := PlaceLogo(box, 60, 30, ClassicLayout())

	assert.Equal(t, Rect{X: 120, Y: 135, W: 60, H: 30}, pl.Image)
	assert.Equal(t, Rect{X: 110, Y: 130, W: 80, H: 40}, pl.Patch)
}

func TestPlaceLogoScalesKeepingRatio(t *testing.T) {
	box := Rect{W: 300, H: 300}
	layout := ClassicLayout()

	for _, src := range [][2]float64{{1000, 500}, {200, 800}, {640, 640}} {
		pl := PlaceLogo(box, src[0], src[1], layout)

		assert.LessOrEqual(t, pl.Image.W, box.W/3+1e-9)
		assert.LessOrEqual(t, pl.Image.H, box.H/3+1e-9)
		assert.InDelta(t, src[0]/src[1], pl.Image.W/pl.Image.H, 1e-9)
		assert.True(t, box.Contains(pl.Patch))

		cx, cy := pl.Image.Center()
		assert.InDelta(t, 150, cx, 1e-9)
		assert.InDelta(t, 150, cy, 1e-9)
	}
}

// recorder logs the paint operations that reach the canvas.
type recorder struct {
	*gg.Context
	ops []string
}

func (r *recorder) Fill()         { r.ops = append(r.ops, "fill"); r.Context.Fill() }
func (r *recorder) FillPreserve() { r.ops = append(r.ops, "frame"); r.Context.FillPreserve() }
func (r *recorder) Stroke()       { r.ops = append(r.ops, "stroke"); r.Context.Stroke() }

func (r *recorder) DrawStringAnchored(s string, x, y, ax, ay float64) {
	r.ops = append(r.ops, "text:"+s)
	r.Context.DrawStringAnchored(s, x, y, ax, ay)
}

func (r *recorder) DrawImage(im image.Image, x, y int) {
	r.ops = append(r.ops, "image")
	r.Context.DrawImage(im, x, y)
}

func indexOf(ops []string, op string) int {
	for i, o := range ops {
		if o == op {
			return i
		}
	}
	return -1
}

func TestComposeZOrder(t *testing.T) {
	e, err := New(PosterLayout(), stubEncoder{})
	require.NoError(t, err)

	req := Request{
		Payload: "x",
		Width:   300,
		Frame:   &FrameSpec{Style: StyleRounded, Text: "Scan me", Title: "Menu"},
	}
	p, err := newPalette(req, e.layout)
	require.NoError(t, err)

	faces := e.fonts.newFaceCache()
	defer faces.Close()
	g, err := e.plan(req, faces)
	require.NoError(t, err)
	grid, err := encodeGrid(e.encoder, req.Payload, g, p)
	require.NoError(t, err)

	rec := &recorder{Context: gg.NewContext(g.CanvasWidth, g.CanvasHeight)}
	require.NoError(t, e.compose(rec, faces, g, p, grid))

	drawLogo(rec, image.NewNRGBA(image.Rect(0, 0, 10, 10)), PlaceLogo(g.QR, 10, 10, e.layout), p.light)

	ops := rec.ops
	base := indexOf(ops, "fill")
	frame := indexOf(ops, "frame")
	stroke := indexOf(ops, "stroke")
	title := indexOf(ops, "text:Menu")
	caption := indexOf(ops, "text:Scan me")
	gridImg := indexOf(ops, "image")
	logoImg := len(ops) - 1

	require.NotEqual(t, -1, title)
	require.NotEqual(t, -1, caption)
	assert.Equal(t, 0, base)
	assert.Less(t, base, frame)
	assert.Less(t, frame, stroke)
	assert.Less(t, stroke, title)
	assert.Less(t, title, caption)
	assert.Less(t, caption, gridImg)
	assert.Less(t, gridImg, logoImg)
	assert.Equal(t, "image", ops[logoImg])
	assert.Equal(t, "fill", ops[logoImg-1], "patch is painted right before the logo")
}

func TestComposeUnframedSkipsDecorations(t *testing.T) {
	e, err := New(ClassicLayout(), stubEncoder{})
	require.NoError(t, err)

	req := Request{Payload: "x", Width: 100}
	p, err := newPalette(req, e.layout)
	require.NoError(t, err)
	faces := e.fonts.newFaceCache()
	defer faces.Close()
	g, err := e.plan(req, faces)
	require.NoError(t, err)
	grid, err := encodeGrid(e.encoder, req.Payload, g, p)
	require.NoError(t, err)

	rec := &recorder{Context: gg.NewContext(g.CanvasWidth, g.CanvasHeight)}
	require.NoError(t, e.compose(rec, faces, g, p, grid))

	assert.Equal(t, []string{"fill", "fill", "image"}, rec.ops)
}
