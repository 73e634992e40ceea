package dto

import (
	"career-compass/internal/domain/catalog"
	"career-compass/internal/domain/profile"
	"career-compass/internal/domain/recommend"
)

type RecommendationRequest struct {
	Education string `json:"education"`
	Skills    string `json:"skills"`
	Interests string `json:"interests"`
}

type ExtractProfileRequest struct {
	Text string `json:"text"`
}

type CareerScoreResponse struct {
	Rank   int     `json:"rank"`
	Career string  `json:"career"`
	Score  float64 `json:"score"`
}

type ResourceLinkResponse struct {
	Skill string `json:"skill"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RecommendationResponse always carries at least one resource entry: real
// links, or a single entry holding only the no-match message.
type RecommendationResponse struct {
	Careers   []CareerScoreResponse  `json:"careers"`
	Resources []ResourceLinkResponse `json:"resources"`
	Message   string                 `json:"resources_message,omitempty"`
	Markdown  string                 `json:"markdown"`
}

type ProfileResponse struct {
	Education string `json:"education"`
	Skills    string `json:"skills"`
	Interests string `json:"interests"`
}

type ResumeAnalysisResponse struct {
	Profile        ProfileResponse        `json:"profile"`
	Recommendation RecommendationResponse `json:"recommendation"`
}

type ResourceResponse struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

func NewRecommendationResponse(r recommend.Result) RecommendationResponse {
	out := RecommendationResponse{
		Careers:   make([]CareerScoreResponse, 0, len(r.Careers)),
		Resources: make([]ResourceLinkResponse, 0, len(r.Resources)),
		Message:   r.ResourcesMessage,
		Markdown:  r.Text(),
	}
	for i, c := range r.Careers {
		out.Careers = append(out.Careers, CareerScoreResponse{Rank: i + 1, Career: c.Career, Score: c.Score})
	}
	for _, l := range r.Resources {
		out.Resources = append(out.Resources, ResourceLinkResponse{Skill: l.Skill, Title: profile.TitleCase(l.Skill), URL: l.URL})
	}
	if len(out.Resources) == 0 {
		out.Resources = append(out.Resources, ResourceLinkResponse{Title: recommend.NoResourcesMessage})
	}
	return out
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{Education: p.Education, Skills: p.Skills, Interests: p.Interests}
}

func NewResourceResponses(entries []catalog.Entry) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ResourceResponse{Keyword: e.Keyword, URL: e.URL})
	}
	return out
}
