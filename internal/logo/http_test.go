package logo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher() *HTTPFetcher {
	f := NewHTTPFetcher(5*time.Second, 1<<20)
	f.backoff = time.Millisecond
	return f
}

func TestHTTPFetcherRetryLogic(t *testing.T) {
	tests := []struct {
		name          string
		responses     []int
		expectCalls   int32
		expectError   bool
		errorContains string
	}{
		{"success on first attempt", []int{200}, 1, false, ""},
		{"success on second attempt after 5xx", []int{500, 200}, 2, false, ""},
		{"4xx is not retried", []int{404}, 1, true, "client error: status code 404"},
		{"4xx after 5xx stops", []int{500, 404}, 2, true, "client error: status code 404"},
		{"all 5xx exhausts attempts", []int{500, 502, 503}, 3, true, "server error: status code 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				i := calls.Add(1) - 1
				status := tt.responses[i]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write(pngBytes(t, 2, 2))
				}
			}))
			defer server.Close()

			body, err := newTestFetcher().Fetch(context.Background(), server.URL)
			assert.Equal(t, tt.expectCalls, calls.Load())
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, body)
		})
	}
}

func TestHTTPFetcherSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, 1024)
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 1024 bytes")
}

func TestHTTPFetcherHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, 1024)
	f.backoff = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.Fetch(ctx, server.URL)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
