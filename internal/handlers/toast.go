package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrframe/web/components"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	props := components.ToastProps{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     components.ParseVariant(c.PostForm("variant")),
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
	}
	renderToast(c, http.StatusOK, props)
}

func renderToast(c *gin.Context, status int, props components.ToastProps) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	_ = components.Toast(props).Render(c.Request.Context(), c.Writer)
}
