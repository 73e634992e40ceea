package recommend

import (
	"math"
	"sort"
	"strings"

	"career-compass/internal/domain/catalog"
	"career-compass/internal/domain/classifier"
)

const (
	TopK = 3

	NoResourcesMessage = "No matching resources found"
)

// Predictor is the trained classifier as seen by the composer.
type Predictor interface {
	Predict(text string) []classifier.Prediction
	Label(index int) (string, bool)
}

type CareerScore struct {
	Career string  `json:"career"`
	Score  float64 `json:"score"`
}

type ResourceLink struct {
	Skill string `json:"skill"`
	URL   string `json:"url"`
}

// Result carries up to TopK careers ordered by score descending. When no
// resource matched, Resources is empty and ResourcesMessage holds
// NoResourcesMessage.
type Result struct {
	Careers          []CareerScore  `json:"careers"`
	Resources        []ResourceLink `json:"resources"`
	ResourcesMessage string         `json:"resources_message,omitempty"`
}

func (r Result) HasResources() bool {
	return len(r.Resources) > 0
}

type Composer struct {
	predictor Predictor
	catalog   catalog.Catalog
}

func NewComposer(p Predictor, cat catalog.Catalog) *Composer {
	return &Composer{predictor: p, catalog: cat}
}

// Compose never fails: an empty or malformed skills string only yields
// the no-resources sentinel.
func (c *Composer) Compose(education, skills, interests string) Result {
	input := education + " " + skills + " " + interests

	res := Result{
		Careers:   c.topCareers(c.predictor.Predict(input)),
		Resources: MatchResources(skills, c.catalog),
	}
	if len(res.Resources) == 0 {
		res.ResourcesMessage = NoResourcesMessage
	}
	return res
}

// topCareers orders by probability descending. sort.SliceStable keeps equal
// probabilities in ascending label order.
func (c *Composer) topCareers(preds []classifier.Prediction) []CareerScore {
	ranked := make([]classifier.Prediction, len(preds))
	copy(ranked, preds)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	if len(ranked) > TopK {
		ranked = ranked[:TopK]
	}

	out := make([]CareerScore, 0, len(ranked))
	for _, p := range ranked {
		name, ok := c.predictor.Label(p.Label)
		if !ok {
			continue
		}
		out = append(out, CareerScore{Career: name, Score: Percent(p.Probability)})
	}
	return out
}

// MatchResources splits skills on ";" and emits one link per (token,
// keyword) pair where the keyword is a substring of the token. Links are
// not de-duplicated across tokens.
func MatchResources(skills string, cat catalog.Catalog) []ResourceLink {
	entries := cat.LookupAll()
	out := make([]ResourceLink, 0)
	for _, raw := range strings.Split(skills, ";") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		for _, e := range entries {
			if strings.Contains(token, e.Keyword) {
				out = append(out, ResourceLink{Skill: e.Keyword, URL: e.URL})
			}
		}
	}
	return out
}

// Percent converts a probability to a percentage rounded to 2 decimals.
func Percent(p float64) float64 {
	return math.Round(p*100*100) / 100
}
