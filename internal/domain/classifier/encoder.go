package classifier

import (
	"sort"
	"strings"
)

// LabelEncoder maps career names to dense indices. Labels are sorted
// ascending so the mapping is stable for a given dataset.
type LabelEncoder struct {
	labels []string
	index  map[string]int
}

func NewLabelEncoder(values []string) *LabelEncoder {
	seen := make(map[string]struct{}, len(values))
	labels := make([]string, 0)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		labels = append(labels, v)
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return &LabelEncoder{labels: labels, index: index}
}

func (e *LabelEncoder) Encode(label string) (int, bool) {
	i, ok := e.index[strings.TrimSpace(label)]
	return i, ok
}

func (e *LabelEncoder) Decode(i int) (string, bool) {
	if i < 0 || i >= len(e.labels) {
		return "", false
	}
	return e.labels[i], true
}

func (e *LabelEncoder) Len() int {
	return len(e.labels)
}

func (e *LabelEncoder) Labels() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}
