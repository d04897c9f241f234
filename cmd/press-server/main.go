package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	press "github.com/goliatone/go-press"
	"github.com/goliatone/go-press/internal/auth"
	"github.com/goliatone/go-press/internal/blob"
	"github.com/goliatone/go-press/internal/documents"
	"github.com/goliatone/go-press/internal/folders"
	"github.com/goliatone/go-press/internal/httpapi"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/logging/gologger"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/internal/notes"
	"github.com/goliatone/go-press/internal/runtimeconfig"
	"github.com/goliatone/go-press/internal/settings"
	"github.com/goliatone/go-press/internal/storage"
	"github.com/goliatone/go-press/internal/timeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "press-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := runtimeconfig.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return err
	}
	logger := logging.ModuleLogger(provider, "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.Migrate(ctx, db, press.GetMigrationsFS()); err != nil {
		return err
	}

	blobs, err := buildBlobStore(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	gate, err := auth.NewGate(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	api := httpapi.New(
		httpapi.WithGate(gate),
		httpapi.WithAdminPasswordHash(cfg.Auth.AdminPasswordHash),
		httpapi.WithDocumentService(documents.NewService(db, blobs,
			documents.WithRenderer(markdown.NewRenderer()),
			documents.WithLogger(logging.DocumentsLogger(provider)),
		)),
		httpapi.WithFolderService(folders.NewService(db, folders.WithLogger(logging.FoldersLogger(provider)))),
		httpapi.WithNoteService(notes.NewService(db, notes.WithLogger(logging.NotesLogger(provider)))),
		httpapi.WithSettingsService(settings.NewService(db)),
		httpapi.WithTimelineService(timeline.NewService(db)),
		httpapi.WithLogger(logging.HTTPLogger(provider)),
	)

	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr, "blob_driver", cfg.Blob.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildBlobStore(ctx context.Context, cfg runtimeconfig.BlobConfig) (blob.Store, error) {
	switch cfg.Driver {
	case runtimeconfig.BlobDriverS3:
		return blob.NewS3Store(ctx, blob.S3Config{
			Region:       cfg.S3.Region,
			Bucket:       cfg.S3.Bucket,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			BaseEndpoint: cfg.S3.BaseEndpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
	case runtimeconfig.BlobDriverFS:
		return blob.NewFSStore(cfg.Path)
	case runtimeconfig.BlobDriverMemory:
		return blob.NewMemoryStore(), nil
	default:
		return nil, runtimeconfig.ErrBlobDriverUnknown
	}
}
