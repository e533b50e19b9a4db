package render

import (
	"strings"

	"github.com/pkg/errors"
)

// FrameStyle selects the border drawn around the QR grid.
type FrameStyle string

const (
	StyleNone    FrameStyle = "none"
	StyleSquare  FrameStyle = "square"
	StyleRounded FrameStyle = "rounded"
)

// ParseFrameStyle accepts the style names case-insensitively; "" means none.
func ParseFrameStyle(s string) (FrameStyle, error) {
	switch FrameStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleNone:
		return StyleNone, nil
	case StyleSquare:
		return StyleSquare, nil
	case StyleRounded:
		return StyleRounded, nil
	default:
		return "", errors.Errorf("unknown frame style %q", s)
	}
}

// Position places the caption (and title band) relative to the grid.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// ParsePosition accepts "top" or "bottom"; "" means bottom.
func ParsePosition(s string) (Position, error) {
	switch Position(strings.ToLower(strings.TrimSpace(s))) {
	case "", PositionBottom:
		return PositionBottom, nil
	case PositionTop:
		return PositionTop, nil
	default:
		return "", errors.Errorf("unknown frame position %q", s)
	}
}

// Request describes one render. It is not modified by the engine.
type Request struct {
	Payload    string     `json:"payload"`
	DarkColor  string     `json:"dark_color,omitempty"`
	LightColor string     `json:"light_color,omitempty"`
	Width      int        `json:"width"`
	Frame      *FrameSpec `json:"frame,omitempty"`
	Logo       *LogoSpec  `json:"logo,omitempty"`
}

// FrameSpec enables the frame, caption and title. A nil FrameSpec renders
// the bare grid.
type FrameSpec struct {
	Style           FrameStyle `json:"style,omitempty"`
	Position        Position   `json:"position,omitempty"`
	Text            string     `json:"text,omitempty"`
	Title           string     `json:"title,omitempty"`
	Color           *RGB       `json:"color,omitempty"`
	BackgroundColor *RGB       `json:"background_color,omitempty"`
	TitleBackground *RGB       `json:"title_background,omitempty"`
}

// LogoSpec points at the image drawn over the center of the grid.
type LogoSpec struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

func (f *FrameSpec) style() (FrameStyle, error) {
	return ParseFrameStyle(string(f.Style))
}

func (f *FrameSpec) position() (Position, error) {
	return ParsePosition(string(f.Position))
}
