package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RGB is a color given as integer channels, as accepted in frame options.
type RGB struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() (string, error) {
	return ToHex(c.R, c.G, c.B)
}

// ToHex formats the channels as "#rrggbb" with lowercase digits.
func ToHex(r, g, b int) (string, error) {
	for _, ch := range [...]int{r, g, b} {
		if ch < 0 || ch > 255 {
			return "", errors.Wrapf(ErrInvalidColor, "channel %d out of range [0,255]", ch)
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), nil
}

// ParseHex parses "#rgb" or "#rrggbb" (the '#' is optional) into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "%q is not a hex color", s)
	}

	r, err1 := strconv.ParseUint(v[0:2], 16, 8)
	g, err2 := strconv.ParseUint(v[2:4], 16, 8)
	b, err3 := strconv.ParseUint(v[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "%q is not a hex color", s)
	}

	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, nil
}

// palette holds every color one render needs, resolved and validated up front.
type palette struct {
	dark       color.NRGBA
	light      color.NRGBA
	border     color.NRGBA
	background color.NRGBA
	badge      color.NRGBA
}

var (
	black = color.NRGBA{A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func newPalette(req Request, layout Layout) (palette, error) {
	p := palette{dark: black, light: white, border: black, background: white}

	var err error
	if p.dark, err = hexOrDefault(req.DarkColor, black); err != nil {
		return palette{}, errors.Wrap(err, "dark color")
	}
	if p.light, err = hexOrDefault(req.LightColor, white); err != nil {
		return palette{}, errors.Wrap(err, "light color")
	}
	if p.badge, err = hexOrDefault(layout.TitleHighlight, white); err != nil {
		return palette{}, errors.Wrap(err, "title highlight")
	}

	if f := req.Frame; f != nil {
		if p.border, err = rgbOrDefault(f.Color, black); err != nil {
			return palette{}, errors.Wrap(err, "frame color")
		}
		if p.background, err = rgbOrDefault(f.BackgroundColor, white); err != nil {
			return palette{}, errors.Wrap(err, "frame background")
		}
		if p.badge, err = rgbOrDefault(f.TitleBackground, p.badge); err != nil {
			return palette{}, errors.Wrap(err, "title background")
		}
	}
	return p, nil
}

func hexOrDefault(s string, def color.NRGBA) (color.NRGBA, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseHex(s)
}

func rgbOrDefault(c *RGB, def color.NRGBA) (color.NRGBA, error) {
	if c == nil {
		return def, nil
	}
	hex, err := c.Hex()
	if err != nil {
		return color.NRGBA{}, err
	}
	return ParseHex(hex)
}
