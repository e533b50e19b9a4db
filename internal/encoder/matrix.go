package encoder

import (
	"image"

	"github.com/pkg/errors"
	"github.com/yeqown/go-qrcode/v2"
)

// Matrix encodes with go-qrcode and rasterizes the raw module matrix.
type Matrix struct{}

func (Matrix) Encode(payload string, opts Options) (image.Image, error) {
	qrc, err := qrcode.NewWith(payload, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest))
	if err != nil {
		return nil, errors.Wrap(err, "create qr code")
	}

	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, errors.Wrap(err, "collect qr matrix")
	}
	return rasterize(w.modules, opts)
}

// matrixWriter implements qrcode.Writer by copying the matrix into a bitmap.
type matrixWriter struct {
	modules [][]bool
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	w.modules = make([][]bool, mat.Height())
	for y := range w.modules {
		w.modules[y] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		w.modules[y][x] = v.IsSet()
	})
	return nil
}

func (w *matrixWriter) Close() error { return nil }
