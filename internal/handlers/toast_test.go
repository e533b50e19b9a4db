package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericToast(t *testing.T) {
	router := newRouter(t, newEngine(t))

	form := url.Values{"title": {"Copied"}, "description": {"Link copied"}, "variant": {"info"}, "dismissible": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/api/htmx/toast", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Copied")
	assert.Contains(t, body, `data-variant="info"`)
	assert.Contains(t, body, "Close")
}
