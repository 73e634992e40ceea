package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"career-compass/internal/usecase"

	"github.com/streadway/amqp"
)

// AMQPPublisher sends model lifecycle events to a topic exchange with
// routing key "model.<event type>". Publish failures are logged only.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *log.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

func NewAMQPPublisher(url, exchange string, logger *log.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = log.Default()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// RoutingKey maps "model_ready" to "model.ready".
func RoutingKey(eventType string) string {
	return "model." + strings.TrimPrefix(eventType, "model_")
}

func (p *AMQPPublisher) PublishModelEvent(_ context.Context, evt usecase.ModelEvent) {
	if p == nil {
		return
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return
	}
	err = p.ch.Publish(
		p.exchange,
		RoutingKey(evt.Type),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		p.logger.Printf("[Events] publish failed | exchange=%s type=%s err=%v", p.exchange, evt.Type, err)
	}
}

func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
