package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"career-compass/internal/domain/profile"
)

// Text renders the result as a markdown block.
func (r Result) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Top %d Career Recommendations:", TopK)
	for i, c := range r.Careers {
		fmt.Fprintf(&b, "\n%d. **%s** (%s%%)", i+1, c.Career, strconv.FormatFloat(c.Score, 'f', -1, 64))
	}

	b.WriteString("\n\n### Recommended Learning Resources:")
	if len(r.Resources) == 0 {
		fmt.Fprintf(&b, "\n- %s.", NoResourcesMessage)
		return b.String()
	}
	for _, l := range r.Resources {
		fmt.Fprintf(&b, "\n- %s: %s", profile.TitleCase(l.Skill), l.URL)
	}
	return b.String()
}
