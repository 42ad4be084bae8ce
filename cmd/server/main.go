// Package main boots the mood journal service and wires application dependencies.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/easeaico/moodjournal/internal/analysis"
	"github.com/easeaico/moodjournal/internal/api"
	"github.com/easeaico/moodjournal/internal/blob"
	"github.com/easeaico/moodjournal/internal/config"
	"github.com/easeaico/moodjournal/internal/journal"
	"github.com/easeaico/moodjournal/internal/memory"
	"github.com/easeaico/moodjournal/internal/models"
	"github.com/easeaico/moodjournal/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	slog.Info("configuration loaded",
		"llm_provider", cfg.LLMProvider, "llm_model", cfg.LLMModel,
		"image_provider", cfg.ImageProvider, "image_model", cfg.ImageModel,
		"banner_enabled", cfg.BannerEnabled, "blob_backend", cfg.BlobBackend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	retry := models.NewRetryPolicy(cfg.LLMMaxRetries)
	llm, err := models.NewCompletionModel(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create completion model: %v", err)
	}
	colorPolicy, err := analysis.ParseColorPolicy(cfg.ColorPolicy)
	if err != nil {
		log.Fatalf("invalid COLOR_POLICY: %v", err)
	}
	pipeline := analysis.NewPipeline(
		models.NewLLMCompleter(llm, models.WithRetryPolicy(retry)),
		analysis.WithColorPolicy(colorPolicy),
		analysis.WithTimeout(cfg.LLMTimeout),
	)

	media, mediaDir, err := newMediaStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create blob store: %v", err)
	}

	opts := []journal.Option{journal.WithLogger(logger)}
	if cfg.OpenAIAPIKey != "" {
		transcriber, err := models.NewTranscriber(cfg.OpenAIAPIKey, cfg.TranscribeModel, retry)
		if err != nil {
			log.Fatalf("failed to create transcriber: %v", err)
		}
		opts = append(opts, journal.WithTranscriber(media, transcriber))
	} else {
		slog.Warn("OPENAI_API_KEY not set, audio entries will not be transcribed")
	}
	if cfg.BannerEnabled {
		images, err := models.NewImageGenerator(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to create image generator: %v", err)
		}
		opts = append(opts, journal.WithBanner(images, blob.NewUploader(media, nil)))
	}

	var similar api.SimilarFinder
	if cfg.GoogleAPIKey != "" {
		embedder, err := memory.NewGenAIEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
		if err != nil {
			log.Fatalf("failed to create embedder: %v", err)
		}
		retriever := memory.NewRetriever(embedder, store.Entries, cfg.TopK, cfg.SimilarityThreshold)
		opts = append(opts, journal.WithIndexer(retriever))
		similar = retriever
	} else {
		slog.Warn("GOOGLE_API_KEY not set, similar entries are disabled")
	}

	processor := journal.NewProcessor(store.Entries, pipeline, opts...)
	worker := journal.NewWorker(processor, cfg.Workers, cfg.QueueSize, 5*cfg.LLMTimeout)

	deps := api.Deps{
		Entries: store.Entries,
		Media:   media,
		Queue:   worker,
		Similar: similar,
	}
	if cfg.BannerEnabled {
		deps.Banners = processor
	}
	mediaPrefix := blob.DefaultFSBaseURL
	if strings.HasPrefix(cfg.BlobBaseURL, "/") {
		mediaPrefix = cfg.BlobBaseURL
	}
	srv := api.NewServer(api.Config{
		Addr:        cfg.HTTPAddr,
		MediaDir:    mediaDir,
		MediaPrefix: mediaPrefix,
	}, deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	slog.Info("shutdown complete", "pending_entries", worker.Pending())
}

// newMediaStore returns the configured blob store and, for the filesystem
// backend, the directory the HTTP server should expose.
func newMediaStore(ctx context.Context, cfg config.Config) (blob.Store, string, error) {
	if cfg.BlobBackend == "s3" {
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		store, err := blob.NewS3Store(connectCtx, cfg.S3Endpoint, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Secure, cfg.BlobBaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	}

	store, err := blob.NewFSStore(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		return nil, "", err
	}
	return store, store.Root(), nil
}

func parseLevel(value string) slog.Level {
	switch value {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
