package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type recommendationCacheKeyInput struct {
	Model     string `json:"model"`
	Education string `json:"education"`
	Skills    string `json:"skills"`
	Interests string `json:"interests"`
}

// normalizeCacheValue only lowercases and trims the outer whitespace; both
// the classifier and resource matching are insensitive to that, while
// inner whitespace still changes substring matches.
func normalizeCacheValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RecommendationCacheKey hashes the input so raw profile text never
// appears in the key.
func RecommendationCacheKey(modelFingerprint string, in RecommendationInput) string {
	k := recommendationCacheKeyInput{
		Model:     modelFingerprint,
		Education: normalizeCacheValue(in.Education),
		Skills:    normalizeCacheValue(in.Skills),
		Interests: normalizeCacheValue(in.Interests),
	}
	b, _ := json.Marshal(k)
	sum := sha256.Sum256(b)
	return "recommend:" + hex.EncodeToString(sum[:])
}
