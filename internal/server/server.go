package server

import (
	"context"
	"log"

	"github.com/PatF3lix/Mapty-App/internal/config"
	"github.com/PatF3lix/Mapty-App/internal/history"
	"github.com/PatF3lix/Mapty-App/internal/session"
	"github.com/PatF3lix/Mapty-App/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Sessions *session.Registry
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	blobs := s.blobStore()
	s.Sessions = session.NewRegistry(func(sessionID string) *session.Controller {
		bridge := stream.NewUIBridge(s.Stream, sessionID)
		adapter := history.NewAdapter(blobs, cfg.HistoryKey)
		return session.NewController(adapter, bridge, bridge, cfg.MapZoom)
	})

	registerRoutes(s)
	return s
}

// blobStore picks the history backend. Redis mirrors the browser's
// key-value storage; Postgres is the deployment alternative.
func (s *Server) blobStore() history.BlobStore {
	if s.Cfg.HistoryBackend == "postgres" && s.DB != nil {
		store := history.NewPostgresStore(s.DB)
		if err := store.EnsureSchema(context.Background()); err != nil {
			log.Printf("history schema setup failed: %v", err)
		}
		return store
	}
	return history.NewRedisStore(s.Redis)
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	session.RegisterRoutes(s.App.Group("/sessions"), s.Sessions)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
