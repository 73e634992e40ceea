package handler

import (
	"errors"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/recommendations", h.Recommend)
	r.Get("/resources", h.Resources)
	r.Get("/careers", h.Careers)
}

func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	res, err := h.uc.Recommend(c.Context(), usecase.RecommendationInput{
		Education: req.Education,
		Skills:    req.Skills,
		Interests: req.Interests,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationResponse(res))
}

func (h *RecommendationHandler) Resources(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResourceResponses(h.uc.Resources(c.Context())))
}

func (h *RecommendationHandler) Careers(c fiber.Ctx) error {
	labels, err := h.uc.Careers(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, labels)
}

func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrModelUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Career model unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
