package render

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts holds the parsed typefaces. Parsed fonts are safe to share; faces
// derived from them are not, so each render builds its own faceCache.
type Fonts struct {
	Regular *opentype.Font
	Bold    *opentype.Font
}

// DefaultFonts returns the embedded Go Regular and Go Bold typefaces.
func DefaultFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse goregular")
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse gobold")
	}
	return &Fonts{Regular: regular, Bold: bold}, nil
}

// LoadFonts reads TrueType/OpenType files. An empty path keeps the embedded
// face for that weight.
func LoadFonts(regularPath, boldPath string) (*Fonts, error) {
	fonts, err := DefaultFonts()
	if err != nil {
		return nil, err
	}
	if regularPath != "" {
		if fonts.Regular, err = parseFontFile(regularPath); err != nil {
			return nil, err
		}
	}
	if boldPath != "" {
		if fonts.Bold, err = parseFontFile(boldPath); err != nil {
			return nil, err
		}
	}
	return fonts, nil
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read font %s", path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse font %s", path)
	}
	return f, nil
}

type faceKey struct {
	size float64
	bold bool
}

type faceCache struct {
	fonts *Fonts
	faces map[faceKey]font.Face
}

func (f *Fonts) newFaceCache() *faceCache {
	return &faceCache{fonts: f, faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: size, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	src := c.fonts.Regular
	if bold {
		src = c.fonts.Bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create face (size=%.1f, bold=%t)", size, bold)
	}
	c.faces[key] = f
	return f, nil
}

func (c *faceCache) Close() {
	for k, f := range c.faces {
		f.Close()
		delete(c.faces, k)
	}
}

// faceMeasurer measures text on a surface using one weight of the cache.
type faceMeasurer struct {
	surface Surface
	faces   *faceCache
	bold    bool
}

func (m faceMeasurer) Measure(text string, size float64) (float64, error) {
	if size <= 0 || text == "" {
		return 0, nil
	}
	face, err := m.faces.face(size, m.bold)
	if err != nil {
		return 0, err
	}
	m.surface.SetFontFace(face)
	w, _ := m.surface.MeasureString(text)
	return w, nil
}
