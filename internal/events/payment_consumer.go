package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PaymentApplier records a cleared payment as advance paid on a booking.
type PaymentApplier interface {
	ApplyPayment(ctx context.Context, bookingID string, amount float64) error
}

// PaymentEventConsumer listens to payment events and applies them to
// bookings.
type PaymentEventConsumer struct {
	consumer *Consumer
	bookings PaymentApplier
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a consumer on the payment topic.
func NewPaymentEventConsumer(brokers []string, groupID string, bookings PaymentApplier, logger *zap.Logger) *PaymentEventConsumer {
	consumer := NewConsumer(brokers, groupID, TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		bookings: bookings,
		logger:   logger,
	}
}

// Start begins consuming payment events. Blocks until the context is
// cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PaymentSucceeded:
		return c.handlePaymentSucceeded(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentSucceeded(ctx context.Context, cloudEvent CloudEvent) error {
	var evt PaymentSucceededEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentSucceededEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing payment succeeded event",
		zap.String("booking_id", evt.BookingID),
		zap.String("payment_id", evt.PaymentID),
	)

	if err := c.bookings.ApplyPayment(ctx, evt.BookingID, evt.Amount); err != nil {
		c.logger.Error("failed to apply payment to booking",
			zap.String("booking_id", evt.BookingID),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("payment applied to booking",
		zap.String("booking_id", evt.BookingID),
	)
	return nil
}
