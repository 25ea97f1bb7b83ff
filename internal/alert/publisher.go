// Package alert publishes flagged interactions to RabbitMQ so reviewers and
// downstream consumers can act on them. Publishing is best-effort: errors
// are returned for logging but must never fail the user-facing request.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys on the alerts exchange.
const (
	KeyEmergency = "triage.emergency"
	KeySession   = "wellness.flagged"
)

// Event is the message body for one alert.
type Event struct {
	Kind      string    `json:"kind"` // "emergency" or "flagged_session"
	UserID    string    `json:"user_id"`
	RiskBand  string    `json:"risk_band,omitempty"`
	RiskScore int       `json:"risk_score,omitempty"`
	Intents   []string  `json:"intents,omitempty"`
	Crisis    bool      `json:"crisis,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes alert events to a topic exchange.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// Dial connects to the broker and declares the exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends one event with the given routing key as a persistent JSON
// message.
func (p *Publisher) Publish(ctx context.Context, key string, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx, p.exchange, key, false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
