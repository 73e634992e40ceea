package linkcheck

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"career-compass/internal/domain/catalog"

	"github.com/gocolly/colly/v2"
)

type Result struct {
	Keyword    string        `json:"keyword"`
	URL        string        `json:"url"`
	StatusCode int           `json:"status_code"`
	Title      string        `json:"title,omitempty"`
	Latency    time.Duration `json:"latency"`
	Err        string        `json:"error,omitempty"`

	index int
}

func (r Result) OK() bool {
	return r.Err == "" && r.StatusCode >= 200 && r.StatusCode < 400
}

type Options struct {
	Workers   int
	RPS       int
	Timeout   time.Duration
	UserAgent string
}

// Checker fetches every catalog URL and reports whether it still serves a
// page. It never modifies the catalog.
type Checker struct {
	opts   Options
	logger *log.Logger
}

func NewChecker(opts Options, logger *log.Logger) *Checker {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = "career-compass-linkcheck/1.0"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Checker{opts: opts, logger: logger}
}

// Check returns one result per entry, in catalog order. Entries left
// unchecked when ctx ends carry ctx's error.
func (c *Checker) Check(ctx context.Context, entries []catalog.Entry) []Result {
	pool := newWorkerPool(c.opts.Workers, len(entries), c.opts.RPS)
	results := pool.run(ctx)

	for i, e := range entries {
		pool.submit(func(ctx context.Context) Result {
			res := c.checkOne(ctx, e)
			res.index = i
			return res
		})
	}
	pool.close()

	out := make([]Result, len(entries))
	seen := make([]bool, len(entries))
	for res := range results {
		if !res.OK() {
			c.logger.Printf("[LinkCheck] broken | keyword=%s url=%s status=%d err=%s", res.Keyword, res.URL, res.StatusCode, res.Err)
		}
		out[res.index] = res
		seen[res.index] = true
	}

	for i, e := range entries {
		if seen[i] {
			continue
		}
		out[i] = Result{Keyword: e.Keyword, URL: e.URL, Err: unchecked(ctx).Error(), index: i}
	}
	return out
}

func unchecked(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return context.Canceled
}

func (c *Checker) checkOne(ctx context.Context, e catalog.Entry) Result {
	res := Result{Keyword: e.Keyword, URL: e.URL}
	if ctx.Err() != nil {
		res.Err = ctx.Err().Error()
		return res
	}

	u, err := url.Parse(e.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		res.Err = fmt.Sprintf("invalid url %q", e.URL)
		return res
	}

	col := colly.NewCollector(colly.UserAgent(c.opts.UserAgent))
	col.SetRequestTimeout(c.opts.Timeout)
	col.AllowURLRevisit = true

	start := time.Now()
	col.OnResponse(func(r *colly.Response) {
		res.StatusCode = r.StatusCode
	})
	col.OnHTML("title", func(h *colly.HTMLElement) {
		if res.Title == "" {
			res.Title = strings.TrimSpace(h.Text)
		}
	})
	col.OnError(func(r *colly.Response, err error) {
		if r != nil {
			res.StatusCode = r.StatusCode
		}
		res.Err = err.Error()
	})

	if err := col.Visit(e.URL); err != nil && res.Err == "" {
		res.Err = err.Error()
	}
	col.Wait()
	res.Latency = time.Since(start)
	return res
}
