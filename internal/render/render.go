// Package render lays out and composites framed QR code images: caption
// fitting, frame and title drawing, grid placement and logo overlay.
package render

import (
	"context"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrframe/internal/encoder"
	"github.com/cristianadrielbraun/qrframe/internal/logger"
)

// LogoLoader fetches and decodes the logo named by a locator.
type LogoLoader interface {
	Load(ctx context.Context, locator string) (image.Image, error)
}

// Engine renders requests with one layout, encoder and font set. It holds no
// per-render state and may be used from several goroutines.
type Engine struct {
	layout  Layout
	encoder encoder.Encoder
	logos   LogoLoader
	fonts   *Fonts
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogoLoader sets the loader used for LogoSpec locators.
func WithLogoLoader(l LogoLoader) Option {
	return func(e *Engine) { e.logos = l }
}

// WithFonts replaces the embedded Go fonts.
func WithFonts(f *Fonts) Option {
	return func(e *Engine) { e.fonts = f }
}

// New validates layout and returns an Engine.
func New(layout Layout, enc encoder.Encoder, opts ...Option) (*Engine, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.New("render: nil encoder")
	}

	e := &Engine{layout: layout, encoder: enc}
	for _, opt := range opts {
		opt(e)
	}
	if e.fonts == nil {
		fonts, err := DefaultFonts()
		if err != nil {
			return nil, err
		}
		e.fonts = fonts
	}
	return e, nil
}

// Layout returns the engine configuration.
func (e *Engine) Layout() Layout { return e.layout }

// Plan computes the geometry Render would use for req without drawing.
func (e *Engine) Plan(req Request) (*Geometry, error) {
	faces := e.fonts.newFaceCache()
	defer faces.Close()
	return e.plan(req, faces)
}

func (e *Engine) plan(req Request, faces *faceCache) (*Geometry, error) {
	scratch := newSurface(1, 1)
	return Plan(req, e.layout,
		faceMeasurer{surface: scratch, faces: faces},
		faceMeasurer{surface: scratch, faces: faces, bold: true},
	)
}

// Render draws req and returns the composited image.
//
// Validation errors (ErrInvalidColor, ErrEmptyInput, ErrLayoutOverflow) are
// returned before anything is drawn, with a nil image. When only the logo
// fails, Render returns the finished frame and grid together with a
// *LogoError; callers decide whether to serve that image.
func (e *Engine) Render(ctx context.Context, req Request) (image.Image, error) {
	start := time.Now()
	if strings.TrimSpace(req.Payload) == "" {
		return nil, errors.Wrap(ErrEmptyInput, "payload")
	}

	p, err := newPalette(req, e.layout)
	if err != nil {
		return nil, err
	}

	faces := e.fonts.newFaceCache()
	defer faces.Close()

	g, err := e.plan(req, faces)
	if err != nil {
		return nil, err
	}
	grid, err := encodeGrid(e.encoder, req.Payload, g, p)
	if err != nil {
		return nil, err
	}

	pending := e.loadLogo(ctx, req.Logo)

	dc := newSurface(g.CanvasWidth, g.CanvasHeight)
	if err := e.compose(dc, faces, g, p, grid); err != nil {
		return nil, err
	}

	log := logger.WithFields(logrus.Fields{
		"width":  req.Width,
		"canvas": []int{g.CanvasWidth, g.CanvasHeight},
		"framed": g.Framed,
	})

	if pending != nil {
		res := await(ctx, pending)
		if res.err != nil {
			log.WithError(res.err).Warn("logo unavailable, returning grid without logo")
			return dc.Image(), &LogoError{Locator: req.Logo.URL, Err: res.err}
		}
		b := res.img.Bounds()
		placement := PlaceLogo(g.QR, float64(b.Dx()), float64(b.Dy()), e.layout)
		drawLogo(dc, res.img, placement, p.light)
	}

	log.WithField("elapsed", time.Since(start).String()).Debug("qr rendered")
	return dc.Image(), nil
}

// compose paints every layer below the logo, in z-order.
func (e *Engine) compose(s Surface, faces *faceCache, g *Geometry, p palette, grid image.Image) error {
	var base color.Color = p.light
	if g.Framed {
		base = p.background
	}
	fillRect(s, Rect{W: float64(s.Width()), H: float64(s.Height())}, base)

	if g.Framed {
		drawFrame(s, g, p, e.layout.FrameRadius)
		if g.Title != nil {
			if err := drawTitle(s, faces, g.Title, p); err != nil {
				return errors.Wrap(err, "draw title")
			}
		}
		if len(g.Captions) > 0 {
			if err := drawCaption(s, faces, g.Captions, p); err != nil {
				return errors.Wrap(err, "draw caption")
			}
		}
	}

	drawGrid(s, grid, g, p)
	return nil
}

type logoResult struct {
	img image.Image
	err error
}

// loadLogo starts fetching the logo and returns a channel that receives
// exactly one result, or nil when no logo was requested.
func (e *Engine) loadLogo(ctx context.Context, spec *LogoSpec) <-chan logoResult {
	if spec == nil || !spec.Enabled {
		return nil
	}

	ch := make(chan logoResult, 1)
	go func() {
		switch {
		case strings.TrimSpace(spec.URL) == "":
			ch <- logoResult{err: errors.New("empty logo locator")}
		case e.logos == nil:
			ch <- logoResult{err: errors.New("no logo loader configured")}
		default:
			img, err := e.logos.Load(ctx, spec.URL)
			if err == nil && (img == nil || img.Bounds().Empty()) {
				err = errors.New("logo has no pixels")
			}
			ch <- logoResult{img: img, err: err}
		}
	}()
	return ch
}

func await(ctx context.Context, pending <-chan logoResult) logoResult {
	select {
	case res := <-pending:
		return res
	case <-ctx.Done():
		return logoResult{err: ctx.Err()}
	}
}
