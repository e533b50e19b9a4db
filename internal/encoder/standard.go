package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// Standard renders through go-qrcode's standard PNG writer and resamples
// the result to the exact width with nearest-neighbour so module edges
// stay sharp.
type Standard struct {
	// ModuleWidth is the writer's pixels per module; 0 means 16.
	ModuleWidth uint8
}

func (s Standard) Encode(payload string, opts Options) (image.Image, error) {
	qrc, err := qrcode.NewWith(payload, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest))
	if err != nil {
		return nil, errors.Wrap(err, "create qr code")
	}

	moduleWidth := s.ModuleWidth
	if moduleWidth == 0 {
		moduleWidth = 16
	}
	dark, light := opts.colors()

	buf := &bufferCloser{}
	w := standard.NewWithWriter(buf,
		standard.WithQRWidth(moduleWidth),
		standard.WithBorderWidth(0),
		standard.WithBgColor(toRGBA(light)),
		standard.WithFgColor(toRGBA(dark)),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(w); err != nil {
		return nil, errors.Wrap(err, "write qr png")
	}

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, errors.Wrap(err, "decode qr png")
	}
	modules := qrc.Dimension()
	if opts.PixelWidth < modules {
		return nil, errors.Wrapf(ErrTooSmall, "%d px for %d modules", opts.PixelWidth, modules)
	}
	return imaging.Resize(img, opts.PixelWidth, opts.PixelWidth, imaging.NearestNeighbor), nil
}

type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error { return nil }

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
