package render

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidColor reports a color channel outside [0,255] or a malformed hex string.
	ErrInvalidColor = errors.New("invalid color")
	// ErrEmptyInput reports text fitting or encoding requested on an empty string.
	ErrEmptyInput = errors.New("empty input")
	// ErrLayoutOverflow reports a requested width too small to hold the QR grid.
	ErrLayoutOverflow = errors.New("layout overflow")
	// ErrLogoUnavailable reports a logo that could not be fetched or decoded.
	ErrLogoUnavailable = errors.New("logo unavailable")
)

// LogoError is returned by Render together with the already composited image
// when the logo step fails. It matches ErrLogoUnavailable with errors.Is.
type LogoError struct {
	Locator string
	Err     error
}

func (e *LogoError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrLogoUnavailable, e.Locator, e.Err)
}

func (e *LogoError) Unwrap() error { return e.Err }

func (e *LogoError) Is(target error) bool { return target == ErrLogoUnavailable }
