package linkcheck

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"career-compass/internal/domain/catalog"

	"github.com/robfig/cron/v3"
)

// Report summarizes the most recent scheduled run.
type Report struct {
	CheckedAt time.Time `json:"checked_at"`
	Total     int       `json:"total"`
	Broken    []Result  `json:"broken"`
}

// Scheduler runs Check against a fixed catalog on a cron schedule
// (standard five-field syntax). Overlapping runs are skipped.
type Scheduler struct {
	checker *Checker
	entries []catalog.Entry
	cron    *cron.Cron
	timeout time.Duration
	logger  *log.Logger

	mu   sync.RWMutex
	last *Report
}

func NewScheduler(spec string, checker *Checker, entries []catalog.Entry, logger *log.Logger) (*Scheduler, error) {
	if checker == nil {
		return nil, fmt.Errorf("nil checker")
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Scheduler{
		checker: checker,
		entries: entries,
		timeout: 5 * time.Minute,
		logger:  logger,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("linkcheck schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Printf("[LinkCheck] scheduled | entries=%d", len(s.entries))
}

// Stop waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	results := s.checker.Check(ctx, s.entries)
	rep := &Report{CheckedAt: time.Now().UTC(), Total: len(results), Broken: []Result{}}
	for _, r := range results {
		if !r.OK() {
			rep.Broken = append(rep.Broken, r)
		}
	}

	s.mu.Lock()
	s.last = rep
	s.mu.Unlock()

	s.logger.Printf("[LinkCheck] done | total=%d broken=%d", rep.Total, len(rep.Broken))
}

// Last returns the latest report, or nil before the first run.
func (s *Scheduler) Last() *Report {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
