package handlers

import (
	"context"
	"image"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrframe/internal/metrics"
	"github.com/cristianadrielbraun/qrframe/internal/render"
)

// Renderer is the part of render.Engine the handlers need.
type Renderer interface {
	Render(ctx context.Context, req render.Request) (image.Image, error)
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	renderer Renderer
	metrics  *metrics.Metrics
	timeout  time.Duration
}

// New returns a new Handler instance.
func New(r Renderer, m *metrics.Metrics, timeout time.Duration) *Handler {
	if m == nil {
		m = metrics.New()
	}
	return &Handler{renderer: r, metrics: m, timeout: timeout}
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/qr", h.QRCodeJSONHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
