// Package events publishes bridge activity to Kafka for downstream
// consumers (analytics, order pipelines). Publishing is best-effort: a dead
// broker must never fail a checkout or an interception decision.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const Topic = "greenmile-bridge"

const (
	TypeCheckoutInitiated = "checkout.initiated"
	TypeCheckoutReady     = "checkout.ready"
	TypeCartRepaired      = "cart.repaired"
	TypeCartIntercepted   = "cart.intercepted"
)

// MessageWriter is the subset of kafka.Writer the publisher uses; tests
// inject a recorder.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	writer MessageWriter
	log    *slog.Logger
}

func NewPublisher(log *slog.Logger, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return NewPublisherWithWriter(w, log)
}

func NewPublisherWithWriter(w MessageWriter, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{writer: w, log: log}
}

func (p *Publisher) CheckoutInitiated(ctx context.Context, attemptID, variantID, countryCode string) {
	p.publish(ctx, TypeCheckoutInitiated, attemptID, map[string]any{
		"attempt_id":   attemptID,
		"variant_id":   variantID,
		"country_code": countryCode,
	})
}

func (p *Publisher) CheckoutReady(ctx context.Context, cartID, countryCode string) {
	p.publish(ctx, TypeCheckoutReady, cartID, map[string]any{
		"cart_id":      cartID,
		"country_code": countryCode,
	})
}

func (p *Publisher) CartRepaired(ctx context.Context, cartID string, removed int) {
	p.publish(ctx, TypeCartRepaired, cartID, map[string]any{
		"cart_id":       cartID,
		"removed_items": removed,
	})
}

func (p *Publisher) CartIntercepted(ctx context.Context, variantID, reason string) {
	p.publish(ctx, TypeCartIntercepted, variantID, map[string]any{
		"variant_id": variantID,
		"reason":     reason,
	})
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, payload map[string]any) {
	payload["occurred_at"] = time.Now().UTC().Format(time.RFC3339)

	value, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("marshal event failed", "event_type", eventType, "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("publish event failed", "event_type", eventType, "err", err)
	}
}
