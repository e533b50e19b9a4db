package render

import (
	"github.com/pkg/errors"
)

// fontSizes is probed in order. 48 follows 46 on purpose; keep the literal order.
var fontSizes = []float64{
	46, 48, 44, 42, 40, 38, 36, 34, 32, 30, 28, 26, 24, 22, 20, 18, 16, 14, 12, 10, 8, 6, 4, 2, 0,
}

// Layout is the read-only configuration shared by every render.
type Layout struct {
	FontSizes        []float64 `yaml:"font_sizes"`
	TextGap          float64   `yaml:"text_gap"`
	MarginDivisor    float64   `yaml:"margin_divisor"`
	LineWidthDivisor float64   `yaml:"line_width_divisor"`
	FrameRadius      float64   `yaml:"frame_radius"`
	GridScale        float64   `yaml:"grid_scale"`
	// OuterPadding is only applied when IncludeOuterPadding is set.
	OuterPadding        float64 `yaml:"outer_padding"`
	IncludeOuterPadding bool    `yaml:"include_outer_padding"`
	SupportsTitle       bool    `yaml:"supports_title"`
	TitlePaddingX       float64 `yaml:"title_padding_x"`
	TitlePaddingY       float64 `yaml:"title_padding_y"`
	TitleHighlight      string  `yaml:"title_highlight"`
	LogoFraction        float64 `yaml:"logo_fraction"`
	LogoPaddingFraction float64 `yaml:"logo_padding_fraction"`
}

// ClassicLayout is the compact variant: canvas is exactly the requested
// width (plus caption height) and titles are ignored.
func ClassicLayout() Layout {
	return Layout{
		FontSizes:           append([]float64(nil), fontSizes...),
		TextGap:             7,
		MarginDivisor:       20,
		LineWidthDivisor:    100,
		FrameRadius:         20,
		GridScale:           0.9,
		OuterPadding:        100,
		TitlePaddingX:       50,
		TitlePaddingY:       10,
		TitleHighlight:      "#ffd43b",
		LogoFraction:        3,
		LogoPaddingFraction: 6,
	}
}

// PosterLayout adds the outer padding band around the composition and
// draws the title badge.
func PosterLayout() Layout {
	l := ClassicLayout()
	l.IncludeOuterPadding = true
	l.SupportsTitle = true
	return l
}

// LayoutByName returns a preset by name; "" selects the classic layout.
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", "classic":
		return ClassicLayout(), nil
	case "poster":
		return PosterLayout(), nil
	default:
		return Layout{}, errors.Errorf("unknown layout %q", name)
	}
}

// Validate checks the configuration before it is handed to an Engine.
func (l Layout) Validate() error {
	if len(l.FontSizes) == 0 {
		return errors.New("layout: font_sizes must not be empty")
	}
	for _, s := range l.FontSizes {
		if s < 0 {
			return errors.Errorf("layout: negative font size %g", s)
		}
	}
	if l.MarginDivisor <= 2 {
		return errors.Errorf("layout: margin_divisor must be > 2 (got %g)", l.MarginDivisor)
	}
	if l.LineWidthDivisor <= 0 || l.LogoFraction <= 0 || l.LogoPaddingFraction <= 0 {
		return errors.New("layout: divisors must be > 0")
	}
	if l.GridScale <= 0 || l.GridScale > 1 {
		return errors.Errorf("layout: grid_scale must be in (0,1] (got %g)", l.GridScale)
	}
	if l.TextGap < 0 || l.OuterPadding < 0 || l.FrameRadius < 0 || l.TitlePaddingX < 0 || l.TitlePaddingY < 0 {
		return errors.New("layout: gaps, paddings and radius must be >= 0")
	}
	if _, err := ParseHex(l.TitleHighlight); err != nil {
		return errors.Wrap(err, "layout: title_highlight")
	}
	return nil
}
