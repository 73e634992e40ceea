package routes

import (
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health          *handler.HealthHandler
	recommendations *handler.RecommendationHandler
	profiles        *handler.ProfileHandler
	ws              *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	recommendations *handler.RecommendationHandler,
	profiles *handler.ProfileHandler,
	wsHandler *ws.Handler,
) *Registry {
	return &Registry{
		health:          health,
		recommendations: recommendations,
		profiles:        profiles,
		ws:              wsHandler,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
	if r.ws != nil {
		app.Get("/ws/model", r.ws.HandleModelWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api").Group("/v1")
	r.recommendations.RegisterRoutes(v1)
	r.profiles.RegisterRoutes(v1)
}
