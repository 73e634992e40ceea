package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"career-compass/internal/domain/dataset"
)

var ErrConfiguration = errors.New("classifier configuration error")

const (
	DefaultMaxIterations = 1000
	DefaultC             = 1.0
	DefaultTolerance     = 1e-4
)

type Options struct {
	// MaxIterations is a hard cap. Hitting it is reported through
	// Stats().Converged, never as an error.
	MaxIterations int
	C             float64
	Tolerance     float64
	// KeepStopWords disables English stop-word removal.
	KeepStopWords bool
}

func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		C:             DefaultC,
		Tolerance:     DefaultTolerance,
	}
}

func (o Options) normalized() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.C <= 0 {
		o.C = DefaultC
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

type Prediction struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

type Stats struct {
	Records    int  `json:"records"`
	Labels     int  `json:"labels"`
	Vocabulary int  `json:"vocabulary"`
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`

	// Fingerprint identifies the label set and vocabulary the model was
	// trained with.
	Fingerprint string `json:"fingerprint"`
}

// Model is a fitted TF-IDF vectorizer plus softmax regression. It is never
// mutated after Train returns, so Predict is safe for concurrent use.
type Model struct {
	encoder    *LabelEncoder
	vectorizer *Vectorizer
	regression *softmaxRegression
	stats      Stats
}

// Train fits a model on every record's combined text. Records are consumed
// in the given order.
func Train(records []dataset.Record, opts Options) (*Model, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no training records", ErrConfiguration)
	}
	opts = opts.normalized()

	docs := make([]string, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.RecommendedCareer) == "" {
			return nil, fmt.Errorf("%w: record=%d has empty career label", ErrConfiguration, i)
		}
		docs = append(docs, r.CombinedText())
	}

	enc := NewLabelEncoder(dataset.Labels(records))
	if enc.Len() == 0 {
		return nil, fmt.Errorf("%w: empty label set", ErrConfiguration)
	}
	if enc.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 distinct careers, got %d", ErrConfiguration, enc.Len())
	}

	stop := englishStopWords
	if opts.KeepStopWords {
		stop = nil
	}
	vec := FitVectorizer(docs, stop)

	xs := make([]sparseVector, len(docs))
	ys := make([]int, len(docs))
	for i, d := range docs {
		xs[i] = vec.Transform(d)
		ys[i], _ = enc.Encode(records[i].RecommendedCareer)
	}

	reg := newSoftmaxRegression(enc.Len(), vec.Len())
	res := reg.fit(xs, ys, fitParams{C: opts.C, MaxIterations: opts.MaxIterations, Tolerance: opts.Tolerance})

	return &Model{
		encoder:    enc,
		vectorizer: vec,
		regression: reg,
		stats: Stats{
			Records:    len(records),
			Labels:     enc.Len(),
			Vocabulary: vec.Len(),
			Iterations: res.Iterations,
			Converged:  res.Converged,

			Fingerprint: fingerprint(enc, vec),
		},
	}, nil
}

// Predict returns one probability per known label, in label index order.
func (m *Model) Predict(text string) []Prediction {
	p := m.regression.predict(m.vectorizer.Transform(text))
	out := make([]Prediction, len(p))
	for i, v := range p {
		out[i] = Prediction{Label: i, Probability: v}
	}
	return out
}

func (m *Model) Label(index int) (string, bool) {
	return m.encoder.Decode(index)
}

func (m *Model) Encoder() *LabelEncoder {
	return m.encoder
}

func (m *Model) Stats() Stats {
	return m.stats
}

func fingerprint(enc *LabelEncoder, vec *Vectorizer) string {
	h := sha256.New()
	for _, l := range enc.labels {
		h.Write([]byte(l))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	for _, t := range vec.terms {
		h.Write([]byte(t))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
