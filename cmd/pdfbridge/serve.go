package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/readlingo/pdfbridge/internal/api"
	"github.com/readlingo/pdfbridge/internal/config"
	"github.com/readlingo/pdfbridge/internal/extract"
	"github.com/readlingo/pdfbridge/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction API",
	Long: `Serve starts the HTTP API configured from the environment
(PORT, CACHE_DIR, USE_CACHE, MAX_SEGMENTS_PER_BATCH, ...).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	proc, err := pipeline.NewProcessor(
		&extract.Extractor{Fallback: cfg.PDFFallback, Log: log},
		pipeline.Options{
			CacheDir:            cfg.CacheDir,
			UseCache:            cfg.UseCache,
			MaxSegmentsPerBatch: cfg.MaxSegmentsPerBatch,
		},
		log,
	)
	if err != nil {
		return err
	}

	srv := api.NewServer(proc, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting pdfbridge", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
