package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"wedding-marketplace/internal/catalog"
	"wedding-marketplace/internal/catalog/messaging"

	amqp "github.com/rabbitmq/amqp091-go"
)

const consumerTag = "notifications-service"

var errMalformedEvent = errors.New("malformed event")

type Consumer struct {
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

func NewConsumer(conn *amqp.Connection, queue string, prefetch int, logger *slog.Logger) (*Consumer, error) {
	ch, err := messaging.DeclareQueue(conn, queue)
	if err != nil {
		return nil, err
	}

	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("set prefetch: %w", err)
		}
	}

	return &Consumer{
		channel: ch,
		queue:   queue,
		logger:  logger,
	}, nil
}

// Listen consumes until ctx is cancelled or the delivery channel closes.
// Malformed payloads are rejected without requeue; other failures are
// requeued.
func (c *Consumer) Listen(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queue,
		consumerTag,
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume queue %q: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			if err := c.handleMessage(msg.Body); err != nil {
				c.logger.Error("handle message failed", "error", err, "delivery_tag", msg.DeliveryTag)
				_ = msg.Nack(false, !errors.Is(err, errMalformedEvent))
				continue
			}

			_ = msg.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var event catalog.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	if event.EventType == "" {
		return fmt.Errorf("%w: missing event_type", errMalformedEvent)
	}

	c.logger.Info("vendor notification",
		"event_type", event.EventType,
		"vendor_id", event.VendorID,
		"listing_id", event.ListingID,
		"contact_id", event.ContactID,
		"text", Render(event),
		"timestamp", event.Timestamp,
	)

	return nil
}

func (c *Consumer) Close() error {
	return c.channel.Close()
}
