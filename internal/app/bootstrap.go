package app

import (
	"context"
	"fmt"
	"strings"

	"resume-match/internal/config"
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/delivery/http/routes"
	v1 "resume-match/internal/delivery/http/routes/v1"
	"resume-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// maxUploadBytes bounds multipart uploads.
const maxUploadBytes = 10 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: maxUploadBytes,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts its background work under ctx and returns the HTTP
// app with a cleanup that releases everything.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	c.Start(ctx)

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger.Named("http"))
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(logger.Named("http"))
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": c.DB,
		"cache":    c.Cache,
	})

	registry := routes.NewRegistry(
		health,
		ws.NewHandler(c.Hub, c.Logger.Named("ws")),
		middleware.NewAuthMiddleware(c.JWT),
		v1.Handlers{
			Documents:    handler.NewDocumentHandler(c.DocumentUC, c.AnalysisUC),
			Jobs:         handler.NewJobHandler(c.JobUC, c.ApplicationUC),
			Matches:      handler.NewMatchHandler(c.MatchingUC),
			Applications: handler.NewApplicationHandler(c.ApplicationUC),
			SavedJobs:    handler.NewSavedJobHandler(c.SavedJobUC),
			Skills:       handler.NewSkillHandler(c.SkillUC),
		},
	)
	registry.Register(app)
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
