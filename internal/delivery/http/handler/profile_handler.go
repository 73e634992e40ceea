package handler

import (
	"io"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc             usecase.ProfileUsecase
	maxUploadBytes int64
}

func NewProfileHandler(uc usecase.ProfileUsecase, maxUploadBytes int) *ProfileHandler {
	return &ProfileHandler{uc: uc, maxUploadBytes: int64(maxUploadBytes)}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/profile/extract", h.Extract)
	r.Post("/resume", h.Resume)
}

func (h *ProfileHandler) Extract(c fiber.Ctx) error {
	var req dto.ExtractProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	p, err := h.uc.Extract(c.Context(), req.Text)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

// Resume accepts a multipart upload in the "file" field.
func (h *ProfileHandler) Resume(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file is required", nil, err)
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, response.MessageTooLarge, nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	p, res, err := h.uc.Analyze(c.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ResumeAnalysisResponse{
		Profile:        dto.NewProfileResponse(p),
		Recommendation: dto.NewRecommendationResponse(res),
	})
}
