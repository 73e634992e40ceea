package events

import (
	"context"

	"career-compass/internal/usecase"
)

// Fanout forwards each event to every non-nil publisher in order.
type Fanout []usecase.ModelEventPublisher

func (f Fanout) PublishModelEvent(ctx context.Context, evt usecase.ModelEvent) {
	for _, p := range f {
		if p == nil {
			continue
		}
		p.PublishModelEvent(ctx, evt)
	}
}
