package ws

import (
	"context"
	"encoding/json"

	"career-compass/internal/usecase"
)

// Notifier publishes model lifecycle events to every websocket client.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) PublishModelEvent(_ context.Context, evt usecase.ModelEvent) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
