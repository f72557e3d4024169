package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// Publisher sends slot_booked events to a durable queue for the audit
// worker. The connection is dialed lazily and re-dialed when the broker
// drops it; a publish that cannot reach the broker returns an error and
// the event is not retried. Publish honours its context both while
// waiting for another publish and while dialing.
type Publisher struct {
	url   string
	queue string

	// sem is a one-slot lock that can be abandoned when ctx ends.
	sem  chan struct{}
	conn *amqp.Connection
	ch   *amqp.Channel
}

// dialTimeout bounds a dial when the publish context has no deadline.
const dialTimeout = 30 * time.Second

// NewPublisher returns a publisher for queueName on the broker at url.
// No connection is made until the first Publish.
func NewPublisher(url, queueName string) *Publisher {
	if queueName == "" {
		queueName = DefaultQueue
	}
	return &Publisher{url: url, queue: queueName, sem: make(chan struct{}, 1)}
}

func (p *Publisher) lock(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) unlock() { <-p.sem }

// ensureConnection must be called with the lock held. The dial, including
// the AMQP handshake, gives up at ctx's deadline.
func (p *Publisher) ensureConnection(ctx context.Context) error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.closeLocked()

	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("dial broker: %w", context.DeadlineExceeded)
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("channel open: %w", err)
	}
	// Durable so messages survive broker restarts; declaring is idempotent.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

// Publish implements notify.Publisher. Messages are persistent JSON.
func (p *Publisher) Publish(ctx context.Context, ev model.SlotBookedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.lock(ctx); err != nil {
		return fmt.Errorf("wait for publisher: %w", err)
	}
	defer p.unlock()
	if err := p.ensureConnection(ctx); err != nil {
		log.Printf("rabbitmq: %v", err)
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         model.TopicSlotBooked,
		MessageId:    ev.ReservationID,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	_ = p.lock(context.Background())
	defer p.unlock()
	p.closeLocked()
	return nil
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
