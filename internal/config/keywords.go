package config

import (
	"fmt"
	"os"
	"strings"

	"career-compass/internal/domain/profile"

	"gopkg.in/yaml.v3"
)

// LoadKeywords reads the extractor keyword lists from a YAML file with
// top-level "education" and "interests" sequences. An empty path or an
// omitted list keeps the default for that list.
func LoadKeywords(path string) (profile.Keywords, error) {
	kw := profile.DefaultKeywords()
	path = strings.TrimSpace(path)
	if path == "" {
		return kw, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return profile.Keywords{}, fmt.Errorf("read keywords file: %w", err)
	}

	var fromFile profile.Keywords
	if err := yaml.Unmarshal(b, &fromFile); err != nil {
		return profile.Keywords{}, fmt.Errorf("parse keywords file %s: %w", path, err)
	}
	if len(fromFile.Education) > 0 {
		kw.Education = fromFile.Education
	}
	if len(fromFile.Interests) > 0 {
		kw.Interests = fromFile.Interests
	}
	return kw, nil
}
