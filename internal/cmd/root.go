package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/config"
	"github.com/cristianadrielbraun/qrframe/internal/encoder"
	"github.com/cristianadrielbraun/qrframe/internal/logger"
	"github.com/cristianadrielbraun/qrframe/internal/logo"
	"github.com/cristianadrielbraun/qrframe/internal/render"
)

var (
	rootCmd = &cobra.Command{
		Use:   "qrframe",
		Short: "qrframe - framed QR code generator (HTTP server and CLI)",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				logger.SetLevel(lvl)
			}
		},
		SilenceUsage: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg
}

// buildEngine wires encoder, layout, fonts and logo loader from cfg.
func buildEngine(cfg *config.Config, logoOpts ...logo.Option) (*render.Engine, error) {
	enc, err := encoder.ByName(cfg.Encoder)
	if err != nil {
		return nil, err
	}
	layout, err := cfg.ResolveLayout()
	if err != nil {
		return nil, err
	}

	opts := []render.Option{
		render.WithLogoLoader(logo.NewLoader(cfg.LogoFetchTimeout, cfg.MaxLogoBytes, logoOpts...)),
	}
	if cfg.FontRegular != "" {
		fonts, err := render.LoadFonts(cfg.FontRegular, cfg.FontBold)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithFonts(fonts))
	}
	return render.New(layout, enc, opts...)
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}
