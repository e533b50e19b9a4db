// Package logo resolves logo locators (http(s) URLs, data URIs and local
// files) into decoded images.
package logo

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"net/url"
	"os"
	"strings"
	"time"
)

// Loader implements render.LogoLoader.
type Loader struct {
	fetcher    *HTTPFetcher
	allowFiles bool
	maxBytes   int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithFiles allows file:// and plain path locators. Servers leave it off.
func WithFiles() Option {
	return func(l *Loader) { l.allowFiles = true }
}

// WithFetcher replaces the default HTTP fetcher.
func WithFetcher(f *HTTPFetcher) Option {
	return func(l *Loader) { l.fetcher = f }
}

// NewLoader creates a loader with an HTTP fetcher bounded by timeout and maxBytes.
func NewLoader(timeout time.Duration, maxBytes int64, opts ...Option) *Loader {
	l := &Loader{
		fetcher:  NewHTTPFetcher(timeout, maxBytes),
		maxBytes: maxBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes the image named by locator.
func (l *Loader) Load(ctx context.Context, locator string) (image.Image, error) {
	data, err := l.read(ctx, strings.TrimSpace(locator))
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *Loader) read(ctx context.Context, locator string) ([]byte, error) {
	switch {
	case strings.HasPrefix(locator, "data:"):
		return decodeDataURI(locator, l.maxBytes)
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return l.fetcher.Fetch(ctx, locator)
	case !l.allowFiles:
		return nil, fmt.Errorf("unsupported logo locator %q", locator)
	case strings.HasPrefix(locator, "file://"):
		u, err := url.Parse(locator)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL: %w", err)
		}
		return l.readFile(u.Path)
	default:
		return l.readFile(locator)
	}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > l.maxBytes {
		return nil, fmt.Errorf("logo exceeds %d bytes", l.maxBytes)
	}
	return os.ReadFile(path)
}

// decodeDataURI handles "data:[<mediatype>][;base64],<data>". The decoded
// payload may not exceed maxBytes.
func decodeDataURI(uri string, maxBytes int64) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		if int64(len(payload)) > int64(base64.StdEncoding.EncodedLen(int(maxBytes))) {
			return nil, fmt.Errorf("logo exceeds %d bytes", maxBytes)
		}
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data URI: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data URI: %w", err)
		}
		data = []byte(unescaped)
	}

	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("logo exceeds %d bytes", maxBytes)
	}
	return data, nil
}
