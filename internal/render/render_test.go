package render_test

import (
	"context"
	"image"
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/encoder"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/scan"
)

const payload = "https://example.com/menu"

func newEngine(t *testing.T, layout render.Layout) *render.Engine {
	t.Helper()
	e, err := render.New(layout, encoder.Matrix{})
	require.NoError(t, err)
	return e
}

func TestRenderFramedCaptionDecodes(t *testing.T) {
	e := newEngine(t, render.ClassicLayout())
	req := render.Request{
		Payload: payload,
		Width:   300,
		Frame:   &render.FrameSpec{Style: render.StyleRounded, Text: "Scan me"},
	}

	img, err := e.Render(context.Background(), req)
	require.NoError(t, err)

	g, err := e.Plan(req)
	require.NoError(t, err)
	require.Len(t, g.Captions, 1)
	assert.Equal(t, image.Rect(0, 0, g.CanvasWidth, g.CanvasHeight), img.Bounds())
	assert.Equal(t, 300, g.CanvasWidth)
	assert.Greater(t, g.CanvasHeight, 300)

	text, err := scan.Decode(img)
	require.NoError(t, err)
	assert.Equal(t, payload, text)
}

func TestRenderGridHasOnlyModuleColors(t *testing.T) {
	e := newEngine(t, render.ClassicLayout())
	req := render.Request{
		Payload:    payload,
		Width:      300,
		DarkColor:  "#1d3557",
		LightColor: "#f1faee",
		Frame:      &render.FrameSpec{Style: render.StyleSquare, Text: "Scan me"},
	}

	img, err := e.Render(context.Background(), req)
	require.NoError(t, err)
	g, err := e.Plan(req)
	require.NoError(t, err)

	dark := color.RGBA{R: 0x1d, G: 0x35, B: 0x57, A: 0xff}
	light := color.RGBA{R: 0xf1, G: 0xfa, B: 0xee, A: 0xff}

	rgba := img.(*image.RGBA)
	x0, y0 := int(math.Round(g.Grid.X)), int(math.Round(g.Grid.Y))
	n := g.GridPixels()
	var darkSeen, lightSeen bool
	for y := y0; y < y0+n; y++ {
		for x := x0; x < x0+n; x++ {
			c := rgba.RGBAAt(x, y)
			switch c {
			case dark:
				darkSeen = true
			case light:
				lightSeen = true
			default:
				t.Fatalf("pixel (%d,%d) = %v is neither module color", x, y, c)
			}
		}
	}
	assert.True(t, darkSeen)
	assert.True(t, lightSeen)
}

func TestRenderIsDeterministic(t *testing.T) {
	e := newEngine(t, render.PosterLayout())
	req := render.Request{
		Payload: payload,
		Width:   240,
		Frame: &render.FrameSpec{
			Style:    render.StyleRounded,
			Position: render.PositionTop,
			Text:     "Table 4\nScan to order",
			Title:    "Menu",
		},
	}

	first, err := e.Render(context.Background(), req)
	require.NoError(t, err)
	second, err := e.Render(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.(*image.RGBA).Pix, second.(*image.RGBA).Pix)
}

func TestRenderConcurrent(t *testing.T) {
	e := newEngine(t, render.ClassicLayout())
	req := render.Request{
		Payload: payload,
		Width:   200,
		Frame:   &render.FrameSpec{Style: render.StyleSquare, Text: "hello"},
	}
	want, err := e.Render(context.Background(), req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]image.Image, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.Render(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want.(*image.RGBA).Pix, results[i].(*image.RGBA).Pix)
	}
}

func TestRenderPosterCanvas(t *testing.T) {
	e := newEngine(t, render.PosterLayout())

	img, err := e.Render(context.Background(), render.Request{Payload: payload, Width: 200})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 400), img.Bounds())

	text, err := scan.Decode(img)
	require.NoError(t, err)
	assert.Equal(t, payload, text)
}

func TestRenderTooSmallForPayload(t *testing.T) {
	e := newEngine(t, render.ClassicLayout())

	_, err := e.Render(context.Background(), render.Request{Payload: payload, Width: 10})
	assert.ErrorIs(t, err, encoder.ErrTooSmall)
}
