package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"career-compass/internal/config"
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/routes"
	"career-compass/internal/infrastructure/document"
	"career-compass/internal/infrastructure/linkcheck"
	"career-compass/internal/usecase"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app around an initialized container.
func New(c *Container) *App {
	cfg := c.Config
	bodyLimit := cfg.App.MaxUploadBytes + 1<<20
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c.Logger)

	recUC := usecase.NewRecommendationUsecase(c.Models, c.Catalog, c.Cache, cfg.Redis.TTL, c.Logger)
	profileUC := usecase.NewProfileUsecase(c.Extractor, document.NewReader(), recUC, c.Logger)

	routes.NewRegistry(
		handler.NewHealthHandler(c.Models, linkReports(c.Links)),
		handler.NewRecommendationHandler(recUC),
		handler.NewProfileHandler(profileUC, cfg.App.MaxUploadBytes),
		ws.NewHandler(c.Hub, c.Logger),
	).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the websocket hub and trains the
// model before returning. A model that cannot be built aborts startup.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(log.Writer(), "", log.LstdFlags)

	ctx, cancel := context.WithCancel(context.Background())
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	go c.Hub.Run(ctx)
	if c.Links != nil {
		c.Links.Start()
	}

	cleanup := func() error {
		cancel()
		return c.Close()
	}

	if _, err := c.Models.Model(ctx); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("initialize career model: %w", err)
	}

	return New(c), cleanup, nil
}

func linkReports(s *linkcheck.Scheduler) handler.LinkReportReader {
	if s == nil {
		return nil
	}
	return s
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger, "/health").Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
