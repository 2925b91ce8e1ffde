package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"eventhire/internal/notification"
)

// ChannelSource hands out the channel to publish on.
type ChannelSource interface {
	Channel() (Channel, error)
}

// Publisher sends notifications as persistent JSON messages routed by their
// type, e.g. evento.changed. It implements notification.Publisher.
type Publisher struct {
	source     ChannelSource
	exchange   string
	maxRetries int
	retryDelay time.Duration
	log        *zap.Logger
}

func NewPublisher(source ChannelSource, exchange string, maxRetries int, retryDelay time.Duration, log *zap.Logger) *Publisher {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{source: source, exchange: exchange, maxRetries: maxRetries, retryDelay: retryDelay, log: log}
}

func (p *Publisher) Publish(ctx context.Context, msg notification.Message) error {
	if msg.At.IsZero() {
		msg.At = time.Now()
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    msg.At,
		Headers: amqp.Table{
			"evento_id":  strconv.FormatInt(msg.EventID, 10),
			"event_type": msg.Type,
		},
	}

	var lastErr error
	for i := 0; i < p.maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.retryDelay * time.Duration(i)):
			}
		}
		if lastErr = p.publishOnce(msg.RoutingKey(), pub); lastErr == nil {
			p.log.Debug("notification published",
				zap.String("routing_key", msg.RoutingKey()), zap.Int64("evento_id", msg.EventID))
			return nil
		}
		p.log.Warn("notification publish failed",
			zap.Int("attempt", i+1), zap.Int("max", p.maxRetries), zap.Error(lastErr))
	}
	return fmt.Errorf("publish %s after %d attempts: %w", msg.RoutingKey(), p.maxRetries, lastErr)
}

func (p *Publisher) publishOnce(key string, pub amqp.Publishing) error {
	ch, err := p.source.Channel()
	if err != nil {
		return err
	}
	return ch.Publish(p.exchange, key, false, false, pub)
}
