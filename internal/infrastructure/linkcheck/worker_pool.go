package linkcheck

import (
	"context"
	"sync"
	"time"
)

type task func(ctx context.Context) Result

// workerPool runs tasks on a fixed number of goroutines, optionally
// throttled to rps task starts per second across all workers.
type workerPool struct {
	workers int
	tasks   chan task
	wg      sync.WaitGroup
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func newWorkerPool(workers, buffer, rps int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	p := &workerPool{
		workers: workers,
		tasks:   make(chan task, buffer),
	}
	if rps > 0 {
		p.ticker = time.NewTicker(time.Second / time.Duration(rps))
		p.rate = p.ticker.C
	}
	return p
}

func (p *workerPool) submit(t task) {
	if t == nil {
		return
	}
	p.tasks <- t
}

func (p *workerPool) close() {
	close(p.tasks)
}

// run starts the workers. The returned channel closes once every submitted
// task has finished or ctx is done.
func (p *workerPool) run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if p.rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-p.rate:
						}
					}
					res := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		if p.ticker != nil {
			p.ticker.Stop()
		}
		close(out)
	}()

	return out
}
