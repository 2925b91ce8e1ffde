// Package broker publishes booking changes to a RabbitMQ topic exchange.
package broker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"eventhire/internal/config"
)

var ErrNotConnected = errors.New("no connection to RabbitMQ")

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Client owns the AMQP connection and re-dials when the server drops it.
type Client struct {
	cfg config.BrokerConfig
	log *zap.Logger

	mu         sync.RWMutex
	connection *amqp.Connection
	channel    *amqp.Channel
	closing    bool
}

func NewClient(cfg config.BrokerConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, log: log}
}

// Connect dials the broker, retrying cfg.RetryCount times, and declares the
// durable topic exchange.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for i := 0; i < c.cfg.RetryCount; i++ {
		if i > 0 {
			time.Sleep(c.cfg.RetryDelay)
		}
		if err := c.dial(); err != nil {
			lastErr = err
			c.log.Warn("rabbitmq connect failed",
				zap.Int("attempt", i+1), zap.Int("max", c.cfg.RetryCount), zap.Error(err))
			continue
		}
		c.log.Info("connected to rabbitmq", zap.String("exchange", c.cfg.Exchange))
		go c.watch(c.connection)
		return nil
	}
	return fmt.Errorf("failed to connect to RabbitMQ: %w", lastErr)
}

func (c *Client) dial() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}
	c.connection, c.channel = conn, ch
	return nil
}

// watch reconnects once conn is closed by the server.
func (c *Client) watch(conn *amqp.Connection) {
	err, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
	if !ok {
		return
	}

	c.mu.RLock()
	closing := c.closing
	c.mu.RUnlock()
	if closing {
		return
	}

	c.log.Warn("rabbitmq connection lost, reconnecting", zap.Error(err))
	time.Sleep(c.cfg.RetryDelay)
	if err := c.Connect(); err != nil {
		c.log.Error("rabbitmq reconnect failed", zap.Error(err))
	}
}

// Channel returns the open channel, or ErrNotConnected.
func (c *Client) Channel() (Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.connection == nil || c.connection.IsClosed() || c.channel == nil {
		return nil, ErrNotConnected
	}
	return c.channel, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing {
		return nil
	}
	c.closing = true

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("channel close: %w", err))
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("connection close: %w", err))
		}
	}
	return errors.Join(errs...)
}
