package handler

import (
	"career-compass/internal/infrastructure/linkcheck"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ModelStatusReader interface {
	Status() usecase.ModelStatus
}

type LinkReportReader interface {
	Last() *linkcheck.Report
}

type HealthHandler struct {
	models ModelStatusReader
	links  LinkReportReader
}

// NewHealthHandler accepts a nil links reader when the scheduled link check
// is disabled.
func NewHealthHandler(models ModelStatusReader, links LinkReportReader) *HealthHandler {
	return &HealthHandler{models: models, links: links}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

type healthResponse struct {
	Ready bool                `json:"ready"`
	Model usecase.ModelStatus `json:"model"`
	Links *linkcheck.Report   `json:"links,omitempty"`
}

// Health reports liveness; model readiness is informational and never
// changes the status code.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	out := healthResponse{}
	if h.models != nil {
		out.Model = h.models.Status()
		out.Ready = out.Model.State == usecase.ModelStateReady
	}
	if h.links != nil {
		out.Links = h.links.Last()
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
