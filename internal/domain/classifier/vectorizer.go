package classifier

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// term is one non-zero entry of a sparse document vector.
type term struct {
	Index int
	Value float64
}

type sparseVector []term

func (v sparseVector) squaredNorm() float64 {
	var s float64
	for _, t := range v {
		s += t.Value * t.Value
	}
	return s
}

// Tokenize lowercases text and returns runs of two or more letters, digits
// or underscores. Single-character runs are dropped.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0)
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= 2 {
			out = append(out, lower[start:end])
		}
		start = -1
		runes = 0
	}
	for i, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lower))
	return out
}

// Vectorizer turns text into L2-normalized TF-IDF vectors over a fixed
// vocabulary. It is immutable once fitted.
type Vectorizer struct {
	vocab map[string]int
	terms []string
	idf   []float64
	stop  stopWordSet
}

// FitVectorizer builds the vocabulary (sorted ascending) and smoothed idf
// weights ln((1+n)/(1+df)) + 1 from docs.
func FitVectorizer(docs []string, stop stopWordSet) *Vectorizer {
	df := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(d) {
			if stop.contains(tok) {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return &Vectorizer{vocab: vocab, terms: terms, idf: idf, stop: stop}
}

func (v *Vectorizer) Len() int {
	return len(v.terms)
}

func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Transform vectorizes text. Unknown and stop-word tokens are ignored; a
// text with no known terms yields an empty vector.
func (v *Vectorizer) Transform(text string) sparseVector {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(text) {
		if v.stop.contains(tok) {
			continue
		}
		i, ok := v.vocab[tok]
		if !ok {
			continue
		}
		counts[i]++
	}
	if len(counts) == 0 {
		return sparseVector{}
	}

	vec := make(sparseVector, 0, len(counts))
	for i, c := range counts {
		vec = append(vec, term{Index: i, Value: c * v.idf[i]})
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].Index < vec[b].Index })

	norm := math.Sqrt(vec.squaredNorm())
	if norm > 0 {
		for i := range vec {
			vec[i].Value /= norm
		}
	}
	return vec
}
