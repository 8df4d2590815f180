package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dasmlab/glosa/pkg/config"
	"github.com/dasmlab/glosa/pkg/gateway"
	"github.com/dasmlab/glosa/pkg/server"
	"github.com/dasmlab/glosa/pkg/translate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation gateway (default command)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()

	logger.WithFields(logrus.Fields{
		"host":             cfg.Host,
		"port":             cfg.Port,
		"debug":            cfg.Debug,
		"engine":           cfg.Engine,
		"engine_url":       cfg.EngineURL,
		"grpc_health_port": cfg.GRPCHealthPort,
		"log_level":        logger.GetLevel().String(),
	}).Info("Starting Glosa translation gateway")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	translator, err := newTranslator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := translator.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close translator")
		}
	}()

	checkTranslator(ctx, translator, logger)

	return serve(ctx, cfg, translator, logger)
}

func newTranslator(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (translate.Translator, error) {
	translator, err := translate.NewTranslator(ctx, cfg.TranslatorConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("create translator: %w", err)
	}
	return translator, nil
}

// checkTranslator logs the provider's health. A failing provider does not
// stop startup; requests fail until it recovers.
func checkTranslator(ctx context.Context, translator translate.Translator, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Info("Checking translator health...")
	if err := translator.CheckHealth(ctx); err != nil {
		logger.WithError(err).Warn("Translator health check failed, but continuing anyway")
		logger.Warn("Server will start, but translation requests may fail until translator is ready")
		return
	}
	logger.Info("Translator health check passed")
}

func serve(ctx context.Context, cfg *config.Config, translator translate.Translator, logger *logrus.Logger) error {
	httpServer := server.NewHTTPServer(gateway.New(translator, logger), logger, cfg.Host, cfg.Port)

	errChan := make(chan error, 2)
	go func() {
		if err := httpServer.Start(); err != nil {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	var healthServer *server.HealthServer
	if cfg.GRPCHealthPort > 0 {
		healthServer = server.NewHealthServer(cfg.GRPCHealthPort, logger)
		healthServer.SetServing(true)
		go func() {
			if err := healthServer.Start(); err != nil {
				errChan <- fmt.Errorf("grpc health server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-errChan:
		logger.WithError(runErr).Error("Server error")
	case <-ctx.Done():
		logger.Info("Received signal, shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if healthServer != nil {
		healthServer.Stop(shutdownCtx)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP server did not shut down cleanly")
	} else {
		logger.Info("Server stopped gracefully")
	}
	return runErr
}
