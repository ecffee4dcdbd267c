// Package events emits claim lifecycle messages to the downstream
// notification, payment and analytics systems over AMQP.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ClaimEvent is the message body shared by every claim queue.
type ClaimEvent struct {
	Reference            string           `json:"reference"`
	ApplicationReference string           `json:"applicationReference"`
	Type                 domain.ClaimType `json:"type"`
	Species              domain.Species   `json:"species"`
	StatusID             int              `json:"statusId"`
	Amount               decimal.Decimal  `json:"amount"`
	OccurredAt           time.Time        `json:"occurredAt"`
}

type Publisher interface {
	// ClaimSubmitted notifies the notification and analytics queues.
	ClaimSubmitted(ctx context.Context, event ClaimEvent) error
	// ClaimStatusChanged notifies the analytics queue.
	ClaimStatusChanged(ctx context.Context, event ClaimEvent) error
	// ClaimReadyToPay requests payment for an approved claim.
	ClaimReadyToPay(ctx context.Context, event ClaimEvent) error
}

type amqpPublisher struct {
	log  *zap.Logger
	cfg  config.Config
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQP connects to the configured broker. Claims can be processed without
// a broker in development: an empty AMQP_URL yields a no-op publisher.
func NewAMQP(cfg config.Config, log *zap.Logger) (Publisher, error) {
	if cfg.AMQPURL == "" {
		log.Warn("AMQP_URL not set, claim events will not be published")
		return NopPublisher{}, nil
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &amqpPublisher{
		log:  log.Named("events.publisher"),
		cfg:  cfg,
		conn: conn,
		ch:   ch,
	}, nil
}

func (p *amqpPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

func (p *amqpPublisher) ClaimSubmitted(ctx context.Context, event ClaimEvent) error {
	if err := p.publish(ctx, p.cfg.NotificationQueue, event); err != nil {
		return err
	}
	return p.publish(ctx, p.cfg.AnalyticsQueue, event)
}

func (p *amqpPublisher) ClaimStatusChanged(ctx context.Context, event ClaimEvent) error {
	return p.publish(ctx, p.cfg.AnalyticsQueue, event)
}

func (p *amqpPublisher) ClaimReadyToPay(ctx context.Context, event ClaimEvent) error {
	return p.publish(ctx, p.cfg.PaymentQueue, event)
}

func (p *amqpPublisher) publish(ctx context.Context, queue string, event ClaimEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	q, err := p.ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx,
		"",     // default exchange
		q.Name, // routing key
		false,  // mandatory
		false,  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		return err
	}

	p.log.Debug("claim event published",
		zap.String("queue", q.Name),
		zap.String("reference", event.Reference))
	return nil
}

// NopPublisher drops every event. Used when no broker is configured and in
// tests.
type NopPublisher struct{}

func (NopPublisher) ClaimSubmitted(context.Context, ClaimEvent) error     { return nil }
func (NopPublisher) ClaimStatusChanged(context.Context, ClaimEvent) error { return nil }
func (NopPublisher) ClaimReadyToPay(context.Context, ClaimEvent) error    { return nil }
