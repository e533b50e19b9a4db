package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/handlers"
	"github.com/cristianadrielbraun/qrframe/internal/logger"
	"github.com/cristianadrielbraun/qrframe/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetString("port")
		}
		if cmd.Flags().Changed("layout") {
			cfg.Layout, _ = cmd.Flags().GetString("layout")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		engine, err := buildEngine(cfg)
		if err != nil {
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		r := gin.New()
		r.Use(gin.Logger())
		r.Use(gin.Recovery())

		h := handlers.New(engine, metrics.New(), cfg.RequestTimeout)
		h.Register(r)

		server := &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      r,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.WithFields(logrus.Fields{
				"address": cfg.ServerAddress(),
				"layout":  cfg.Layout,
				"encoder": cfg.Encoder,
			}).Info("qrframe listening")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return err
		}
		logger.Info("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides PORT)")
	serveCmd.Flags().String("layout", "", "classic or poster (overrides QR_LAYOUT)")
}
