// Package events publishes domain lifecycle events to a durable RabbitMQ
// queue. Publishing is best-effort: the API never fails a request because
// the broker is down, and a nil *Publisher is a no-op.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event types emitted by the services.
const (
	TypeTodoCreated   = "todo.created"
	TypeTodoCompleted = "todo.completed"
	TypeTodoDeleted   = "todo.deleted"
	TypeUserSignedUp  = "user.signed_up"
	TypeUserLoggedIn  = "user.logged_in"
)

// Event is the JSON payload placed on the queue.
type Event struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id,omitempty"`
	TodoID string    `json:"todo_id,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher wraps an AMQP channel and queue for publishing events.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	// Declare durable queue
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, Queue: queue}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Publish sends one event to the queue. Safe to call on a nil receiver.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	if p == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}
