package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/domain/catalog"
	"career-compass/internal/domain/profile"
	"career-compass/internal/domain/recommend"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type fakeRecommendations struct {
	res     recommend.Result
	err     error
	lastIn  usecase.RecommendationInput
	careers []string
}

func (f *fakeRecommendations) Recommend(_ context.Context, in usecase.RecommendationInput) (recommend.Result, error) {
	f.lastIn = in
	return f.res, f.err
}

func (f *fakeRecommendations) Resources(context.Context) []catalog.Entry {
	return catalog.Default().LookupAll()
}

func (f *fakeRecommendations) Careers(context.Context) ([]string, error) {
	return f.careers, f.err
}

type fakeProfiles struct {
	p        profile.Profile
	res      recommend.Result
	err      error
	filename string
	size     int
}

func (f *fakeProfiles) Extract(context.Context, string) (profile.Profile, error) {
	return f.p, f.err
}

func (f *fakeProfiles) Analyze(_ context.Context, filename, _ string, data []byte) (profile.Profile, recommend.Result, error) {
	f.filename = filename
	f.size = len(data)
	return f.p, f.res, f.err
}

type fakeStatus struct{ st usecase.ModelStatus }

func (f fakeStatus) Status() usecase.ModelStatus { return f.st }

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(rec usecase.RecommendationUsecase, prof usecase.ProfileUsecase, maxUpload int) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	NewHealthHandler(fakeStatus{st: usecase.ModelStatus{State: usecase.ModelStateReady}}, nil).RegisterRoutes(app)
	v1 := app.Group("/api/v1")
	NewRecommendationHandler(rec).RegisterRoutes(v1)
	NewProfileHandler(prof, maxUpload).RegisterRoutes(v1)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, env
}

func sampleResult() recommend.Result {
	return recommend.Result{
		Careers: []recommend.CareerScore{
			{Career: "Data Scientist", Score: 61.2},
			{Career: "Machine Learning Engineer", Score: 20.5},
			{Career: "Software Engineer", Score: 8.3},
		},
		Resources: []recommend.ResourceLink{
			{Skill: "python", URL: "https://www.learnpython.org/"},
		},
	}
}

func TestRecommend_OK(t *testing.T) {
	rec := &fakeRecommendations{res: sampleResult()}
	app := newTestApp(rec, &fakeProfiles{}, 0)

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/recommendations",
		`{"education":"Bachelor's in Computer Science","skills":"Python; Machine Learning","interests":"AI"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	if rec.lastIn.Skills != "Python; Machine Learning" {
		t.Fatalf("unexpected input passed through: %+v", rec.lastIn)
	}

	var data struct {
		Careers []struct {
			Rank   int     `json:"rank"`
			Career string  `json:"career"`
			Score  float64 `json:"score"`
		} `json:"careers"`
		Resources []struct {
			Skill string `json:"skill"`
			Title string `json:"title"`
		} `json:"resources"`
		Markdown string `json:"markdown"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Careers) != 3 || data.Careers[0].Rank != 1 || data.Careers[0].Career != "Data Scientist" {
		t.Fatalf("unexpected careers: %+v", data.Careers)
	}
	if len(data.Resources) != 1 || data.Resources[0].Title != "Python" {
		t.Fatalf("unexpected resources: %+v", data.Resources)
	}
	if !strings.Contains(data.Markdown, "Data Scientist") {
		t.Fatalf("markdown missing career: %q", data.Markdown)
	}
}

func TestRecommend_NoResourcesCarriesMessage(t *testing.T) {
	res := sampleResult()
	res.Resources = nil
	res.ResourcesMessage = recommend.NoResourcesMessage
	app := newTestApp(&fakeRecommendations{res: res}, &fakeProfiles{}, 0)

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"skills":"knitting"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(env.Data), recommend.NoResourcesMessage) {
		t.Fatalf("expected no-match message in %s", env.Data)
	}
}

func TestRecommend_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest},
		{"model unavailable", usecase.ErrModelUnavailable, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeRecommendations{err: tc.err}, &fakeProfiles{}, 0)
			status, env := doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"skills":"python"}`)
			if status != tc.status || env.Status != tc.status {
				t.Fatalf("expected %d, got %d / %d", tc.status, status, env.Status)
			}
		})
	}
}

func TestRecommend_MalformedBody(t *testing.T) {
	app := newTestApp(&fakeRecommendations{}, &fakeProfiles{}, 0)
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/recommendations", `{"skills":`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestResourcesAndCareers(t *testing.T) {
	app := newTestApp(&fakeRecommendations{careers: []string{"Data Scientist", "UX Designer"}}, &fakeProfiles{}, 0)

	status, env := doJSON(t, app, http.MethodGet, "/api/v1/resources", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var resources []struct {
		Keyword string `json:"keyword"`
	}
	if err := json.Unmarshal(env.Data, &resources); err != nil {
		t.Fatalf("decode resources: %v", err)
	}
	if len(resources) != catalog.Default().Len() || resources[0].Keyword != "python" {
		t.Fatalf("unexpected resources: %+v", resources)
	}

	status, env = doJSON(t, app, http.MethodGet, "/api/v1/careers", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var careers []string
	if err := json.Unmarshal(env.Data, &careers); err != nil {
		t.Fatalf("decode careers: %v", err)
	}
	if len(careers) != 2 {
		t.Fatalf("unexpected careers: %v", careers)
	}
}

func TestExtractProfile(t *testing.T) {
	prof := &fakeProfiles{p: profile.Profile{Education: "Master", Skills: "python", Interests: "ai"}}
	app := newTestApp(&fakeRecommendations{}, prof, 0)

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/profile/extract", `{"text":"Master, python, ai"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(env.Data), `"education":"Master"`) {
		t.Fatalf("unexpected data: %s", env.Data)
	}

}

func TestExtractProfile_BlankTextReturnsSentinel(t *testing.T) {
	ex := profile.NewExtractor(profile.DefaultKeywords(), catalog.Default())
	app := newTestApp(&fakeRecommendations{}, usecase.NewProfileUsecase(ex, nil, nil, log.New(io.Discard, "", 0)), 0)

	for _, body := range []string{`{"text":"  "}`, `{"text":""}`, `{}`} {
		status, env := doJSON(t, app, http.MethodPost, "/api/v1/profile/extract", body)
		if status != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", body, status)
		}
		want := `{"education":"Not Found","skills":"","interests":""}`
		if string(env.Data) != want {
			t.Fatalf("unexpected data for %s: %s", body, env.Data)
		}
	}
}

func multipartRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestResumeUpload(t *testing.T) {
	prof := &fakeProfiles{p: profile.Profile{Education: "Bachelor"}, res: sampleResult()}
	app := newTestApp(&fakeRecommendations{}, prof, 1024)

	status, env := do(t, app, multipartRequest(t, "cv.pdf", []byte("%PDF-1.4 fake")))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	if prof.filename != "cv.pdf" || prof.size == 0 {
		t.Fatalf("upload not passed through: %q %d", prof.filename, prof.size)
	}
	if !strings.Contains(string(env.Data), `"recommendation"`) {
		t.Fatalf("expected recommendation in %s", env.Data)
	}
}

func TestResumeUpload_TooLarge(t *testing.T) {
	app := newTestApp(&fakeRecommendations{}, &fakeProfiles{}, 16)

	status, _ := do(t, app, multipartRequest(t, "cv.pdf", bytes.Repeat([]byte("x"), 64)))
	if status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", status)
	}
}

func TestResumeUpload_MissingFile(t *testing.T) {
	app := newTestApp(&fakeRecommendations{}, &fakeProfiles{}, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume", strings.NewReader(""))
	status, _ := do(t, app, req)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(&fakeRecommendations{}, &fakeProfiles{}, 0)
	status, env := doJSON(t, app, http.MethodGet, "/health", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(env.Data), `"ready":true`) {
		t.Fatalf("expected ready model, got %s", env.Data)
	}
}
