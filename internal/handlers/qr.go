package handlers

import (
	"context"
	stderrors "errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/cristianadrielbraun/qrframe/internal/errors"
	"github.com/cristianadrielbraun/qrframe/internal/logger"
	"github.com/cristianadrielbraun/qrframe/internal/metrics"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/scan"
	"github.com/cristianadrielbraun/qrframe/web/components"
)

const (
	defaultSize = 400
	maxSize     = 4000

	warningHeader = "X-QR-Warning"
)

// qrParams is accepted both as query string and as JSON body.
type qrParams struct {
	Text        string `form:"text" json:"text"`
	URL         string `form:"url" json:"url"`
	Size        int    `form:"size" json:"size"`
	FG          string `form:"fg" json:"fg"`
	BG          string `form:"bg" json:"bg"`
	Frame       string `form:"frame" json:"frame"`
	Position    string `form:"position" json:"position"`
	Caption     string `form:"caption" json:"caption"`
	Title       string `form:"title" json:"title"`
	BorderColor string `form:"borderColor" json:"borderColor"`
	FrameBg     string `form:"frameBg" json:"frameBg"`
	TitleBg     string `form:"titleBg" json:"titleBg"`
	Logo        string `form:"logo" json:"logo"`
	StrictLogo  bool   `form:"strictLogo" json:"strictLogo"`
	Format      string `form:"format" json:"format"`
	Verify      bool   `form:"verify" json:"verify"`
}

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	if len(v) > 4096 {
		return "", fmt.Errorf("URL is too long")
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	return u.String(), nil
}

// parseColorParam turns an optional hex parameter into a frame color.
func parseColorParam(param string) (*render.RGB, error) {
	if strings.TrimSpace(param) == "" {
		return nil, nil
	}
	c, err := render.ParseHex(param)
	if err != nil {
		return nil, err
	}
	return &render.RGB{R: int(c.R), G: int(c.G), B: int(c.B)}, nil
}

// toRequest validates p and builds the render request and output format.
func (p qrParams) toRequest() (render.Request, string, error) {
	payload := p.Text
	if strings.TrimSpace(p.URL) != "" {
		u, err := normalizeHTTPURL(p.URL)
		if err != nil {
			return render.Request{}, "", apperrors.NewValidationError(err.Error(), err)
		}
		payload = u
	}
	if strings.TrimSpace(payload) == "" {
		return render.Request{}, "", apperrors.NewValidationError("text or url parameter is required", render.ErrEmptyInput)
	}

	format := strings.ToLower(strings.TrimSpace(p.Format))
	switch format {
	case "", "png":
		format = "png"
	case "jpg", "jpeg":
		format = "jpg"
	default:
		return render.Request{}, "", apperrors.NewValidationError(fmt.Sprintf("unsupported format %q", p.Format), nil)
	}

	size := p.Size
	if size == 0 {
		size = defaultSize
	}
	if size < 0 || size > maxSize {
		return render.Request{}, "", apperrors.NewValidationError(fmt.Sprintf("size must be between 1 and %d", maxSize), nil)
	}

	req := render.Request{
		Payload:    payload,
		DarkColor:  p.FG,
		LightColor: p.BG,
		Width:      size,
	}

	if p.wantsFrame() {
		style, err := render.ParseFrameStyle(p.Frame)
		if err != nil {
			return render.Request{}, "", apperrors.NewValidationError(err.Error(), err)
		}
		pos, err := render.ParsePosition(p.Position)
		if err != nil {
			return render.Request{}, "", apperrors.NewValidationError(err.Error(), err)
		}
		frame := &render.FrameSpec{Style: style, Position: pos, Text: p.Caption, Title: p.Title}
		for _, f := range []struct {
			name  string
			value string
			dst   **render.RGB
		}{
			{"borderColor", p.BorderColor, &frame.Color},
			{"frameBg", p.FrameBg, &frame.BackgroundColor},
			{"titleBg", p.TitleBg, &frame.TitleBackground},
		} {
			c, err := parseColorParam(f.value)
			if err != nil {
				return render.Request{}, "", apperrors.NewValidationError("invalid "+f.name, err)
			}
			*f.dst = c
		}
		req.Frame = frame
	}

	if strings.TrimSpace(p.Logo) != "" {
		req.Logo = &render.LogoSpec{Enabled: true, URL: strings.TrimSpace(p.Logo)}
	}
	return req, format, nil
}

// wantsFrame reports whether any frame parameter was given. Caption, title
// and frame colors without an explicit frame select frame=none, which draws
// them without a border.
func (p qrParams) wantsFrame() bool {
	for _, v := range []string{p.Frame, p.Position, p.Caption, p.Title, p.BorderColor, p.FrameBg, p.TitleBg} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// QRCodeHandler renders a QR code from query parameters.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	var p qrParams
	if err := c.ShouldBindQuery(&p); err != nil {
		h.respondError(c, apperrors.NewValidationError("invalid query parameters", err))
		return
	}
	h.serveQR(c, p)
}

// QRCodeJSONHandler renders a QR code from a JSON body.
func (h *Handler) QRCodeJSONHandler(c *gin.Context) {
	var p qrParams
	if err := c.ShouldBindJSON(&p); err != nil {
		h.respondError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}
	h.serveQR(c, p)
}

func (h *Handler) serveQR(c *gin.Context, p qrParams) {
	start := time.Now()
	req, format, err := p.toRequest()
	if err != nil {
		h.metrics.ObserveRender(formatLabel(p.Format), metrics.ResultRejected, p.wantsFrame(), time.Since(start))
		h.respondError(c, err)
		return
	}

	log := logger.WithFields(logrus.Fields{
		"size":   req.Width,
		"format": format,
		"frame":  p.Frame,
		"logo":   req.Logo != nil,
	})

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result := metrics.ResultOK
	img, err := h.renderer.Render(ctx, req)

	var logoErr *render.LogoError
	if stderrors.As(err, &logoErr) {
		h.metrics.LogoFailed()
		if p.StrictLogo {
			h.metrics.ObserveRender(format, metrics.ResultFailed, req.Frame != nil, time.Since(start))
			h.respondError(c, apperrors.NewNetworkError("logo unavailable", logoErr))
			return
		}
		c.Header(warningHeader, "logo unavailable")
		result = metrics.ResultNoLogo
		err = nil
	}
	if err != nil {
		appErr := apperrors.FromRender(err)
		res := metrics.ResultFailed
		if apperrors.IsType(appErr, apperrors.ErrorTypeValidation) {
			res = metrics.ResultRejected
		}
		h.metrics.ObserveRender(format, res, req.Frame != nil, time.Since(start))
		log.WithError(err).Warn("qr render failed")
		h.respondError(c, appErr)
		return
	}

	if p.Verify {
		if err := scan.Verify(img, req.Payload); err != nil {
			h.metrics.VerifyFailed()
			h.metrics.ObserveRender(format, metrics.ResultFailed, req.Frame != nil, time.Since(start))
			log.WithError(err).Error("rendered qr does not decode")
			h.respondError(c, apperrors.NewProcessingError("rendered QR code failed verification", err))
			return
		}
	}

	c.Header("Cache-Control", "public, max-age=3600")
	if err := writeImage(c, img, format); err != nil {
		log.WithError(err).Error("failed to encode qr image")
		return
	}
	h.metrics.ObserveRender(format, result, req.Frame != nil, time.Since(start))
	b := img.Bounds()
	log.WithFields(logrus.Fields{
		"canvas":  fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"result":  result,
		"elapsed": time.Since(start).String(),
	}).Info("qr sent")
}

func writeImage(c *gin.Context, img image.Image, format string) error {
	c.Status(http.StatusOK)
	if format == "jpg" {
		c.Header("Content-Type", "image/jpeg")
		return jpeg.Encode(c.Writer, img, &jpeg.Options{Quality: 92})
	}
	c.Header("Content-Type", "image/png")
	return png.Encode(c.Writer, img)
}

// respondError writes err as JSON, or as a toast fragment for HTMX requests.
func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := apperrors.FromRender(err)
	if c.GetHeader("HX-Request") == "true" {
		// htmx only swaps 2xx responses
		renderToast(c, http.StatusOK, components.ToastProps{
			Title:       "Could not create QR code",
			Description: appErr.Message,
			Variant:     components.VariantError,
			Duration:    4000,
			Dismissible: true,
		})
		return
	}
	c.JSON(apperrors.GetStatusCode(appErr), appErr)
}

func formatLabel(f string) string {
	if strings.EqualFold(f, "jpg") || strings.EqualFold(f, "jpeg") {
		return "jpg"
	}
	return "png"
}
