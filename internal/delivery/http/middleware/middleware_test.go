package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"career-compass/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

func TestNormalizeError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"app 400 keeps message", NewAppError(fiber.StatusBadRequest, "skills too long", nil, nil), 400, "skills too long"},
		{"app 400 default message", NewAppError(fiber.StatusBadRequest, "", nil, nil), 400, response.MessageBadRequest},
		{"app 503 passes through", NewAppError(fiber.StatusServiceUnavailable, "Career model unavailable", nil, errors.New("no data")), 503, "Career model unavailable"},
		{"app 500 is masked", NewAppError(fiber.StatusBadGateway, "upstream detail", nil, nil), 500, response.MessageInternalServerError},
		{"fiber 404", fiber.NewError(fiber.StatusNotFound, "no such route"), 404, "no such route"},
		{"fiber 413 default message", fiber.NewError(fiber.StatusRequestEntityTooLarge, ""), 413, response.MessageTooLarge},
		{"plain error", errors.New("boom"), 500, response.MessageInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := normalizeError(tc.err)
			if status != tc.status || msg != tc.msg {
				t.Fatalf("got (%d, %q), want (%d, %q)", status, msg, tc.status, tc.msg)
			}
		})
	}
}

func TestMiddleware_RequestIDAndPanic(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(logger, "/health").Middleware())
	app.Use(NewErrorMiddleware(logger).Middleware())
	app.Get("/panic", func(fiber.Ctx) error { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(HeaderRequestID, "rid-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if resp.Header.Get(HeaderRequestID) != "rid-123" {
		t.Fatalf("request id not echoed: %q", resp.Header.Get(HeaderRequestID))
	}
	var env response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.RequestID != "rid-123" || env.Message != response.MessageInternalServerError {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
