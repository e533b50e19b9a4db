package encoder

import (
	"image"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// Skip2 encodes with skip2/go-qrcode's bitmap.
type Skip2 struct{}

func (Skip2) Encode(payload string, opts Options) (image.Image, error) {
	q, err := qrcode.New(payload, qrcode.Highest)
	if err != nil {
		return nil, errors.Wrap(err, "create qr code")
	}
	q.DisableBorder = true
	return rasterize(q.Bitmap(), opts)
}
