package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrframe/internal/encoder"
	"github.com/cristianadrielbraun/qrframe/internal/render"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLoader struct{ err error }

func (s stubLoader) Load(context.Context, string) (image.Image, error) {
	return nil, s.err
}

func newRouter(t *testing.T, r Renderer) *gin.Engine {
	t.Helper()
	router := gin.New()
	New(r, nil, 5*time.Second).Register(router)
	return router
}

func newEngine(t *testing.T) *render.Engine {
	t.Helper()
	e, err := render.New(render.ClassicLayout(), encoder.Matrix{},
		render.WithLogoLoader(stubLoader{err: errors.New("unreachable")}))
	require.NoError(t, err)
	return e
}

func get(router http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestQRCodeHandlerPNG(t *testing.T) {
	router := newRouter(t, newEngine(t))

	rec := get(router, "/api/qr?url=example.com&size=300&frame=rounded&caption=Scan%20me&verify=true")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 300)
}

func TestQRCodeHandlerJPEGDefaults(t *testing.T) {
	router := newRouter(t, newEngine(t))

	rec := get(router, "/api/qr?text=hello&format=jpeg")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))

	img, err := jpeg.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, defaultSize, defaultSize), img.Bounds())
}

func TestQRCodeHandlerValidation(t *testing.T) {
	router := newRouter(t, newEngine(t))

	tests := []struct {
		name   string
		target string
	}{
		{"missing payload", "/api/qr"},
		{"bad url scheme", "/api/qr?url=ftp://example.com/file"},
		{"size too large", "/api/qr?text=x&size=5000"},
		{"size not a number", "/api/qr?text=x&size=big"},
		{"bad fg", "/api/qr?text=x&fg=%23zzzzzz"},
		{"bad frame", "/api/qr?text=x&frame=dotted"},
		{"bad border color", "/api/qr?text=x&frame=square&borderColor=blue"},
		{"bad format", "/api/qr?text=x&format=gif"},
		{"too small for payload", "/api/qr?text=hello&size=10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "validation", body["type"])
		})
	}
}

func TestQRCodeHandlerErrorDetails(t *testing.T) {
	router := newRouter(t, newEngine(t))

	rec := get(router, "/api/qr?text=x&fg=%23zzzzzz")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid color", body["message"])
	assert.Contains(t, body["details"], "dark color")
	assert.EqualValues(t, http.StatusBadRequest, body["status_code"])
}

func TestFrameParamsImplyFrame(t *testing.T) {
	tests := []struct {
		name   string
		params qrParams
		framed bool
	}{
		{"bare", qrParams{Text: "x"}, false},
		{"caption only", qrParams{Text: "x", Caption: "Scan me"}, true},
		{"title only", qrParams{Text: "x", Title: "Menu"}, true},
		{"frame bg only", qrParams{Text: "x", FrameBg: "#eeeeee"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _, err := tt.params.toRequest()
			require.NoError(t, err)
			if !tt.framed {
				assert.Nil(t, req.Frame)
				return
			}
			require.NotNil(t, req.Frame)
			assert.Equal(t, render.StyleNone, req.Frame.Style)
			assert.Equal(t, tt.params.Caption, req.Frame.Text)
		})
	}
}

func TestQRCodeHandlerCaptionWithoutFrame(t *testing.T) {
	router := newRouter(t, newEngine(t))

	rec := get(router, "/api/qr?text=hello&size=300&caption=Scan%20me")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 300, "caption adds height below the grid")
}

func TestQRCodeHandlerLogoPolicy(t *testing.T) {
	router := newRouter(t, newEngine(t))

	rec := get(router, "/api/qr?text=hello&logo=https://example.com/logo.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logo unavailable", rec.Header().Get(warningHeader))

	rec = get(router, "/api/qr?text=hello&logo=https://example.com/logo.png&strictLogo=true")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestQRCodeHandlerHTMXError(t *testing.T) {
	router := newRouter(t, newEngine(t))

	rec := get(router, "/api/qr?size=12", "HX-Request", "true")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `role="alert"`)
}

func TestQRCodeJSONHandler(t *testing.T) {
	router := newRouter(t, newEngine(t))

	body, err := json.Marshal(map[string]interface{}{
		"text":     "hello",
		"size":     240,
		"frame":    "square",
		"position": "top",
		"caption":  "Line1\nLine2",
		"frameBg":  "#fafafa",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/qr", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 240, img.Bounds().Dx())

	req = httptest.NewRequest(http.MethodPost, "/api/qr", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type failingRenderer struct{ err error }

func (f failingRenderer) Render(context.Context, render.Request) (image.Image, error) {
	return nil, f.err
}

func TestQRCodeHandlerInternalError(t *testing.T) {
	router := newRouter(t, failingRenderer{err: errors.New("boom")})

	rec := get(router, "/api/qr?text=hello")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNormalizeHTTPURL(t *testing.T) {
	u, err := normalizeHTTPURL("  example.com/path ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", u)

	u, err = normalizeHTTPURL("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", u)

	for _, bad := range []string{"", "mailto://x", "https://"} {
		_, err := normalizeHTTPURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	router := newRouter(t, newEngine(t))

	rec := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String())

	_ = get(router, "/api/qr?text=hello")
	rec = get(router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `qrframe_renders_total{format="png",result="ok"} 1`)
}
