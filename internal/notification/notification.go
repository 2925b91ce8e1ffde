// Package notification carries change events about bookings to whoever
// listens: the live calendar feed and the outbound broker.
package notification

import (
	"context"
	"errors"
	"time"
)

// Notification type constants
const (
	TypeEventChanged = "evento.changed"
	TypeEventDeleted = "evento.deleted"
)

// Message is the payload sent for every booking change.
type Message struct {
	Type          string    `json:"type"`
	EventID       int64     `json:"evento_id"`
	Date          string    `json:"data_evento,omitempty"`
	DateTo        string    `json:"data_evento_a,omitempty"`
	LocationIndex int       `json:"location_index,omitempty"`
	Status        string    `json:"stato,omitempty"`
	MaterialIDs   []int64   `json:"materiali,omitempty"`
	At            time.Time `json:"at"`
}

// RoutingKey is the broker routing key for the message.
func (m Message) RoutingKey() string {
	return m.Type
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Fanout delivers a message to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, msg Message) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every message.
type Nop struct{}

func (Nop) Publish(context.Context, Message) error { return nil }
