package logo

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

const (
	// svgFallbackSize is used for SVGs without a usable view box.
	svgFallbackSize = 512
	// maxSVGSide bounds the raster an SVG is drawn onto; larger view boxes
	// are scaled down keeping their ratio.
	maxSVGSide = 1024
	// maxRasterPixels bounds the decoded size of raster logos.
	maxRasterPixels = 4096 * 4096
)

// Decode turns raster (PNG, JPEG, GIF, BMP, TIFF, WebP) or SVG bytes into an image.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty logo data")
	}
	if isSVG(data) {
		return rasterizeSVG(data)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxRasterPixels {
		return nil, fmt.Errorf("logo dimensions %dx%d exceed %d pixels", cfg.Width, cfg.Height, maxRasterPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimSpace(head)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// svgSize returns the raster size for a view box, at most maxSVGSide per side.
func svgSize(vw, vh float64) (int, int) {
	if !(vw > 0) || !(vh > 0) || math.IsInf(vw, 0) || math.IsInf(vh, 0) {
		return svgFallbackSize, svgFallbackSize
	}
	if longest := math.Max(vw, vh); longest > maxSVGSide {
		vw = vw * maxSVGSide / longest
		vh = vh * maxSVGSide / longest
	}
	return max(1, int(math.Ceil(vw))), max(1, int(math.Ceil(vh)))
}

// rasterizeSVG draws the icon at its view box size, capped to maxSVGSide.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w, h := svgSize(icon.ViewBox.W, icon.ViewBox.H)
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}
