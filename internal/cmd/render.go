package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/logger"
	"github.com/cristianadrielbraun/qrframe/internal/logo"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/scan"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one QR code to a PNG or JPEG file (by file extension)",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		out, _ := cmd.Flags().GetString("out")
		if text == "" || out == "" {
			return fmt.Errorf("--text and --out required")
		}

		// stdout is reserved for the result line
		logger.SetOutput(os.Stderr)
		cfg := mustLoadConfig()
		if cmd.Flags().Changed("layout") {
			cfg.Layout, _ = cmd.Flags().GetString("layout")
		}
		if cmd.Flags().Changed("encoder") {
			cfg.Encoder, _ = cmd.Flags().GetString("encoder")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		engine, err := buildEngine(cfg, logo.WithFiles())
		if err != nil {
			return err
		}

		req, err := requestFromFlags(cmd, text)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		img, err := engine.Render(ctx, req)
		var logoErr *render.LogoError
		if stderrors.As(err, &logoErr) {
			logger.WithError(logoErr).Warn("logo unavailable, writing QR without logo")
			err = nil
		}
		if err != nil {
			return err
		}

		if verify, _ := cmd.Flags().GetBool("verify"); verify {
			if err := scan.Verify(img, req.Payload); err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}
		}

		if err := writeFile(out, img); err != nil {
			return err
		}
		logger.WithField("out", out).Debug("qr written")
		fmt.Println("Wrote:", filepath.Clean(out))
		return nil
	},
}

func requestFromFlags(cmd *cobra.Command, text string) (render.Request, error) {
	width, _ := cmd.Flags().GetInt("width")
	fg, _ := cmd.Flags().GetString("fg")
	bg, _ := cmd.Flags().GetString("bg")
	req := render.Request{Payload: text, Width: width, DarkColor: fg, LightColor: bg}

	frame, _ := cmd.Flags().GetString("frame")
	caption, _ := cmd.Flags().GetString("caption")
	title, _ := cmd.Flags().GetString("title")
	// a caption or title without --frame is drawn on frame=none
	if frame != "" || caption != "" || title != "" {
		style, err := render.ParseFrameStyle(frame)
		if err != nil {
			return render.Request{}, err
		}
		position, _ := cmd.Flags().GetString("position")
		pos, err := render.ParsePosition(position)
		if err != nil {
			return render.Request{}, err
		}
		req.Frame = &render.FrameSpec{
			Style:    style,
			Position: pos,
			// shells pass "\n" literally
			Text:  strings.ReplaceAll(caption, `\n`, "\n"),
			Title: title,
		}
	}
	if l, _ := cmd.Flags().GetString("logo"); l != "" {
		req.Logo = &render.LogoSpec{Enabled: true, URL: l}
	}
	return req, nil
}

func writeFile(out string, img image.Image) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func init() {
	renderCmd.Flags().String("text", "", "payload to encode")
	renderCmd.Flags().String("out", "", "output file (.png, .jpg)")
	renderCmd.Flags().Int("width", 400, "frame width in pixels")
	renderCmd.Flags().String("fg", "", "module color (hex)")
	renderCmd.Flags().String("bg", "", "background color (hex)")
	renderCmd.Flags().String("frame", "", "none, square or rounded; empty for no frame")
	renderCmd.Flags().String("position", "bottom", "caption position: top or bottom")
	renderCmd.Flags().String("caption", "", `caption text, "\n" separates lines`)
	renderCmd.Flags().String("title", "", "title badge (poster layout)")
	renderCmd.Flags().String("logo", "", "logo URL, data URI or file path")
	renderCmd.Flags().String("layout", "", "classic or poster (overrides QR_LAYOUT)")
	renderCmd.Flags().String("encoder", "", "matrix, standard or skip2 (overrides QR_ENCODER)")
	renderCmd.Flags().Bool("verify", false, "decode the result and compare with --text")
}
