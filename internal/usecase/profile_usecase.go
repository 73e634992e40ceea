package usecase

import (
	"context"
	"errors"
	"log"

	"career-compass/internal/domain/profile"
	"career-compass/internal/domain/recommend"
)

var ErrUnsupportedDocument = errors.New("unsupported document type")

// DocumentReader turns an uploaded file into plain text. Implementations
// wrap ErrUnsupportedDocument for formats they do not handle.
type DocumentReader interface {
	ReadText(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type ProfileUsecase interface {
	Extract(ctx context.Context, text string) (profile.Profile, error)
	Analyze(ctx context.Context, filename, contentType string, data []byte) (profile.Profile, recommend.Result, error)
}

type Profile struct {
	extractor *profile.Extractor
	documents DocumentReader
	recommend RecommendationUsecase
	logger    *log.Logger
}

func NewProfileUsecase(extractor *profile.Extractor, documents DocumentReader, rec RecommendationUsecase, logger *log.Logger) *Profile {
	if logger == nil {
		logger = log.Default()
	}
	return &Profile{extractor: extractor, documents: documents, recommend: rec, logger: logger}
}

// Extract never fails on text content; blank text yields the sentinel profile.
func (u *Profile) Extract(_ context.Context, text string) (profile.Profile, error) {
	return u.extractor.Extract(text), nil
}

// Analyze reads the document, extracts a profile and recommends from it.
func (u *Profile) Analyze(ctx context.Context, filename, contentType string, data []byte) (profile.Profile, recommend.Result, error) {
	if len(data) == 0 || u.documents == nil {
		return profile.Profile{}, recommend.Result{}, ErrInvalidInput
	}

	text, err := u.documents.ReadText(ctx, filename, contentType, data)
	if err != nil {
		if !errors.Is(err, ErrUnsupportedDocument) {
			u.logger.Printf("[Profile] document read failed | file=%q err=%v", filename, err)
		}
		return profile.Profile{}, recommend.Result{}, ErrInvalidInput
	}

	p := u.extractor.Extract(text)
	res, err := u.recommend.Recommend(ctx, RecommendationInput{
		Education: p.Education,
		Skills:    p.Skills,
		Interests: p.Interests,
	})
	if err != nil {
		return p, recommend.Result{}, err
	}
	return p, res, nil
}
