package profile

import (
	"testing"

	"career-compass/internal/domain/catalog"
)

func newTestExtractor() *Extractor {
	return NewExtractor(DefaultKeywords(), catalog.Default())
}

func TestExtract_CaseInsensitiveSkill(t *testing.T) {
	p := newTestExtractor().Extract("PYTHON DEVELOPER")
	if p.Skills != "Python" {
		t.Fatalf("expected skills=Python, got %q", p.Skills)
	}
}

func TestExtract_EducationPriorityFollowsKeywordList(t *testing.T) {
	p := newTestExtractor().Extract("PhD in Bachelor studies")
	if p.Education != "Bachelor" {
		t.Fatalf("expected Bachelor, got %q", p.Education)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	p := newTestExtractor().Extract("I enjoy hiking and cooking.")
	if p.Education != NotFound {
		t.Fatalf("expected %q, got %q", NotFound, p.Education)
	}
	if p.Skills != "" || p.Interests != "" {
		t.Fatalf("expected empty skills/interests, got %q / %q", p.Skills, p.Interests)
	}
}

func TestExtract_SubstringMatchingWithoutWordBoundaries(t *testing.T) {
	p := newTestExtractor().Extract("Senior JavaScript engineer")
	if p.Skills != "Java" {
		t.Fatalf("expected java inside javascript to match, got %q", p.Skills)
	}
}

func TestExtract_CatalogAndListOrder(t *testing.T) {
	text := "Management of design teams. Skills: System Design, communication, Machine Learning, python. Interested in healthcare and AI."
	p := newTestExtractor().Extract(text)

	wantSkills := "Python; Machine Learning; Communication; System Design"
	if p.Skills != wantSkills {
		t.Fatalf("skills: want %q, got %q", wantSkills, p.Skills)
	}
	wantInterests := "Ai; Design; Healthcare; Management"
	if p.Interests != wantInterests {
		t.Fatalf("interests: want %q, got %q", wantInterests, p.Interests)
	}
}

func TestExtract_CustomKeywords(t *testing.T) {
	ex := NewExtractor(Keywords{Education: []string{" Diploma "}, Interests: []string{"Robotics"}}, catalog.New(nil))
	p := ex.Extract("diploma in robotics")
	if p.Education != "Diploma" || p.Interests != "Robotics" || p.Skills != "" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"machine learning": "Machine Learning",
		"ui/ux":            "Ui/Ux",
		"ai":               "Ai",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Fatalf("TitleCase(%q): want %q, got %q", in, want, got)
		}
	}
}
