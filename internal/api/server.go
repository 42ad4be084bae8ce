// Package api exposes journal entries and their AI enrichment over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/easeaico/moodjournal/internal/types"
)

// UserHeader carries the authenticated user id set by the fronting auth proxy.
const UserHeader = "X-User-ID"

// EntryStore abstracts the persistence layer.
type EntryStore interface {
	Create(ctx context.Context, entry *types.JournalEntry) error
	GetForUser(ctx context.Context, userID string, id int) (*types.JournalEntry, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]types.JournalEntry, error)
	Update(ctx context.Context, entry *types.JournalEntry) error
	FindByDate(ctx context.Context, userID string, date time.Time) ([]types.JournalEntry, error)
	ListByMonth(ctx context.Context, userID string, year int, month time.Month) ([]types.JournalEntry, error)
	AvailableYears(ctx context.Context, userID string) ([]int, error)
	SearchTitles(ctx context.Context, userID, query string) ([]types.TitleMatch, error)
	Delete(ctx context.Context, userID string, id int) error
}

// MediaStore keeps uploaded media files.
type MediaStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Queue schedules background processing of an entry.
type Queue interface {
	Enqueue(id int) bool
}

// BannerGenerator regenerates an entry banner synchronously.
type BannerGenerator interface {
	RegenerateBanner(ctx context.Context, entry *types.JournalEntry) (string, error)
}

// SimilarFinder finds entries close to a given one.
type SimilarFinder interface {
	Similar(ctx context.Context, entry *types.JournalEntry) ([]types.SimilarEntry, error)
}

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr string
	// MediaDir is served under MediaPrefix when set.
	MediaDir    string
	MediaPrefix string
	BodyLimit   int
}

// Deps are the services behind the handlers. Banners and Similar are optional.
type Deps struct {
	Entries EntryStore
	Media   MediaStore
	Queue   Queue
	Banners BannerGenerator
	Similar SimilarFinder
}

// Server exposes the Fiber application.
type Server struct {
	app  *fiber.App
	cfg  Config
	deps Deps
	now  func() time.Time
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 50 << 20
	}
	if cfg.MediaPrefix == "" {
		cfg.MediaPrefix = "/media"
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          90 * time.Second,
		BodyLimit:             cfg.BodyLimit,
		Immutable:             true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Format: "${time} | ${status} | ${latency} | ${method} ${path}\n"}))
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, " + UserHeader,
	}))

	srv := &Server{app: app, cfg: cfg, deps: deps, now: time.Now}
	srv.registerRoutes()
	return srv
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := s.app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("failed to shut down http server", "error", err.Error())
		}
	}()

	slog.Info("journal service listening", "addr", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if s.cfg.MediaDir != "" {
		s.app.Static(s.cfg.MediaPrefix, s.cfg.MediaDir)
	}

	api := s.app.Group("/api/v1", requireUser)
	api.Get("/emotions", s.handleEmotions)
	api.Get("/entries", s.handleListEntries)
	api.Post("/entries", s.handleCreateEntry)
	api.Get("/entries/date/:date", s.handleEntriesByDate)
	api.Get("/entries/:id", s.handleGetEntry)
	api.Patch("/entries/:id", s.handleUpdateEntry)
	api.Get("/entries/:id/status", s.handleEntryStatus)
	api.Post("/entries/:id/banner", s.handleRegenerateBanner)
	api.Get("/entries/:id/similar", s.handleSimilarEntries)
	api.Delete("/entries/:id", s.handleDeleteEntry)
	api.Get("/calendar", s.handleCalendar)
	api.Get("/search", s.handleSearch)
}

func requireUser(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Get(UserHeader))
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing "+UserHeader+" header")
	}
	c.Locals("user_id", userID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
