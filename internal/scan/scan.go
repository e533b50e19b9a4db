// Package scan decodes rendered images back to their payload to confirm the
// grid survived framing and logo overlay.
package scan

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Decode returns the text of the QR code found in img.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarize image: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("decode qr code: %w", err)
	}
	return result.GetText(), nil
}

// Verify checks that img decodes to payload.
func Verify(img image.Image, payload string) error {
	text, err := Decode(img)
	if err != nil {
		return err
	}
	if text != payload {
		return fmt.Errorf("decoded payload %q does not match %q", text, payload)
	}
	return nil
}
