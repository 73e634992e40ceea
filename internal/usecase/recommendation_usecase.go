package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"career-compass/internal/domain/catalog"
	"career-compass/internal/domain/recommend"
)

type RecommendationInput struct {
	Education string
	Skills    string
	Interests string
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, in RecommendationInput) (recommend.Result, error)
	Resources(ctx context.Context) []catalog.Entry
	Careers(ctx context.Context) ([]string, error)
}

type Recommendation struct {
	models   *ModelProvider
	catalog  catalog.Catalog
	cache    ResultCache
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewRecommendationUsecase(models *ModelProvider, cat catalog.Catalog, cache ResultCache, cacheTTL time.Duration, logger *log.Logger) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{
		models:   models,
		catalog:  cat,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (u *Recommendation) Recommend(ctx context.Context, in RecommendationInput) (recommend.Result, error) {
	model, err := u.models.Model(ctx)
	if err != nil {
		return recommend.Result{}, err
	}

	key := RecommendationCacheKey(model.Stats().Fingerprint, in)
	if u.cache != nil {
		var cached recommend.Result
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Printf("[Recommend] cache get failed | err=%v", err)
		}
		if hit {
			return cached, nil
		}
	}

	res := recommend.NewComposer(model, u.catalog).Compose(in.Education, in.Skills, in.Interests)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, res, u.cacheTTL); err != nil {
			u.logger.Printf("[Recommend] cache set failed | err=%v", err)
		}
	}
	return res, nil
}

func (u *Recommendation) Resources(context.Context) []catalog.Entry {
	return u.catalog.LookupAll()
}

func (u *Recommendation) Careers(ctx context.Context) ([]string, error) {
	model, err := u.models.Model(ctx)
	if err != nil {
		if errors.Is(err, ErrModelUnavailable) {
			return nil, err
		}
		return nil, ErrInternal
	}
	return model.Encoder().Labels(), nil
}
