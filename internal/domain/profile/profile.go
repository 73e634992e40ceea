package profile

import (
	"strings"

	"career-compass/internal/domain/catalog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const NotFound = "Not Found"

const listSeparator = "; "

type Profile struct {
	Education string `json:"education"`
	Skills    string `json:"skills"`
	Interests string `json:"interests"`
}

// Keywords are matched in slice order; order decides education priority
// and the order of joined interests.
type Keywords struct {
	Education []string `yaml:"education"`
	Interests []string `yaml:"interests"`
}

func DefaultKeywords() Keywords {
	return Keywords{
		Education: []string{"bachelor", "master", "msc", "bsc", "phd", "degree", "diploma"},
		Interests: []string{"ai", "technology", "design", "media", "healthcare", "management"},
	}
}

type Extractor struct {
	education []string
	interests []string
	skills    []string
}

func NewExtractor(kw Keywords, cat catalog.Catalog) *Extractor {
	return &Extractor{
		education: normalizeKeywords(kw.Education),
		interests: normalizeKeywords(kw.Interests),
		skills:    cat.Keywords(),
	}
}

// Extract matches keywords as plain substrings of the lowercased text.
// There is no word-boundary check: "java" matches inside "javascript".
func (e *Extractor) Extract(text string) Profile {
	lower := strings.ToLower(text)

	p := Profile{Education: NotFound}
	for _, k := range e.education {
		if strings.Contains(lower, k) {
			p.Education = TitleCase(k)
			break
		}
	}
	p.Skills = joinMatches(lower, e.skills)
	p.Interests = joinMatches(lower, e.interests)
	return p
}

func TitleCase(s string) string {
	// cases.Caser keeps state and must not be shared between goroutines.
	return cases.Title(language.Und).String(s)
}

func joinMatches(lower string, keywords []string) string {
	found := make([]string, 0)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			found = append(found, TitleCase(k))
		}
	}
	return strings.Join(found, listSeparator)
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	return out
}
