// Package bootstrap wires configuration, adapters, and services into a
// runnable fiber app.
package bootstrap

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"voice_server/adapter/in/http"
	"voice_server/config"
	"voice_server/pkg/logger"
)

// NewAPI builds the fiber app with every route registered. The returned
// cleanup closes shared clients.
func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "voice-api",
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	// Restore a persisted profile so a restart does not force a relearn.
	deps.VoiceService.Restore(context.Background(), cfg.DefaultUserID)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.IsProduction(),
		ReadBufferSize:        16384,
		WriteBufferSize:       16384,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	http.NewHealthHandler(deps.Redis).Register(app)

	api := app.Group("/api/v1")
	http.NewReplyHandler(deps.ReplyService, deps.BatchDrafter).Register(api)
	http.NewVoiceHandler(deps.VoiceService, cfg).Register(api)
	http.NewIngestHandler(deps.Channels).Register(api)

	return app, cleanup, nil
}
