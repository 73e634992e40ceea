package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"career-compass/internal/domain/classifier"
	"career-compass/internal/domain/dataset"
)

type TrainingSource interface {
	Name() string
	Load(ctx context.Context) ([]dataset.Record, error)
}

const (
	ModelEventTraining = "model_training"
	ModelEventReady    = "model_ready"
	ModelEventFailed   = "model_failed"
)

type ModelEvent struct {
	Type       string `json:"type"`
	Source     string `json:"source"`
	Records    int    `json:"records,omitempty"`
	Labels     int    `json:"labels,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
	Converged  bool   `json:"converged,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  string `json:"timestamp"`
}

type ModelEventPublisher interface {
	PublishModelEvent(ctx context.Context, evt ModelEvent)
}

const (
	ModelStateIdle     = "idle"
	ModelStateTraining = "training"
	ModelStateReady    = "ready"
	ModelStateFailed   = "failed"
)

type ModelStatus struct {
	State  string           `json:"state"`
	Source string           `json:"source"`
	Stats  classifier.Stats `json:"stats"`
	Error  string           `json:"error,omitempty"`
}

// ModelProvider trains the classifier at most once per process. Every
// caller, concurrent or later, receives the same model or the same error.
type ModelProvider struct {
	source    TrainingSource
	opts      classifier.Options
	publisher ModelEventPublisher
	logger    *log.Logger
	timeout   time.Duration

	once  sync.Once
	model *classifier.Model
	err   error

	mu     sync.RWMutex
	status ModelStatus
}

func NewModelProvider(source TrainingSource, opts classifier.Options, publisher ModelEventPublisher, logger *log.Logger) *ModelProvider {
	if logger == nil {
		logger = log.Default()
	}
	name := ""
	if source != nil {
		name = source.Name()
	}
	return &ModelProvider{
		source:    source,
		opts:      opts,
		publisher: publisher,
		logger:    logger,
		status:    ModelStatus{State: ModelStateIdle, Source: name},
	}
}

// WithTrainTimeout bounds the single training run. It must be set before the
// first call to Model.
func (p *ModelProvider) WithTrainTimeout(d time.Duration) *ModelProvider {
	p.timeout = d
	return p
}

// Model blocks until training has finished. Cancelling ctx does not abort a
// training run already in progress; only the provider's own timeout does.
func (p *ModelProvider) Model(ctx context.Context) (*classifier.Model, error) {
	p.once.Do(func() {
		trainCtx := context.WithoutCancel(ctx)
		if p.timeout > 0 {
			var cancel context.CancelFunc
			trainCtx, cancel = context.WithTimeout(trainCtx, p.timeout)
			defer cancel()
		}
		p.model, p.err = p.train(trainCtx)
	})
	return p.model, p.err
}

func (p *ModelProvider) Status() ModelStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *ModelProvider) Ready() bool {
	return p.Status().State == ModelStateReady
}

func (p *ModelProvider) train(ctx context.Context) (*classifier.Model, error) {
	src := p.status.Source
	p.setStatus(ModelStatus{State: ModelStateTraining, Source: src})
	p.publish(ctx, ModelEvent{Type: ModelEventTraining, Source: src})

	start := time.Now()
	m, err := p.load(ctx)
	if err != nil {
		p.logger.Printf("[Model] training failed | source=%s err=%v", src, err)
		p.setStatus(ModelStatus{State: ModelStateFailed, Source: src, Error: err.Error()})
		p.publish(ctx, ModelEvent{Type: ModelEventFailed, Source: src, Error: err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	st := m.Stats()
	p.logger.Printf(
		"[Model] trained | source=%s records=%d labels=%d vocabulary=%d iterations=%d converged=%t took=%s",
		src, st.Records, st.Labels, st.Vocabulary, st.Iterations, st.Converged, time.Since(start),
	)
	if !st.Converged {
		p.logger.Printf("[Model] optimizer hit iteration cap | max_iterations=%d", st.Iterations)
	}

	p.setStatus(ModelStatus{State: ModelStateReady, Source: src, Stats: st})
	p.publish(ctx, ModelEvent{
		Type:       ModelEventReady,
		Source:     src,
		Records:    st.Records,
		Labels:     st.Labels,
		Iterations: st.Iterations,
		Converged:  st.Converged,
	})
	return m, nil
}

func (p *ModelProvider) load(ctx context.Context) (*classifier.Model, error) {
	if p.source == nil {
		return nil, fmt.Errorf("%w: no training source", classifier.ErrConfiguration)
	}
	records, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return classifier.Train(records, p.opts)
}

func (p *ModelProvider) setStatus(st ModelStatus) {
	p.mu.Lock()
	p.status = st
	p.mu.Unlock()
}

func (p *ModelProvider) publish(ctx context.Context, evt ModelEvent) {
	if p.publisher == nil {
		return
	}
	evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	p.publisher.PublishModelEvent(ctx, evt)
}
