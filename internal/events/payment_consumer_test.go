package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type applierStub struct {
	bookingID string
	amount    float64
	calls     int
	err       error
}

func (a *applierStub) ApplyPayment(ctx context.Context, bookingID string, amount float64) error {
	a.calls++
	a.bookingID = bookingID
	a.amount = amount
	return a.err
}

func paymentMessage(t *testing.T, eventType string, data any) kafkago.Message {
	t.Helper()
	ce, err := NewCloudEvent("service-payment", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func TestHandleMessage_PaymentSucceeded(t *testing.T) {
	applier := &applierStub{}
	c := &PaymentEventConsumer{bookings: applier, logger: zap.NewNop()}

	msg := paymentMessage(t, PaymentSucceeded, PaymentSucceededEvent{
		PaymentID:  "p1",
		BookingID:  "1718452800000",
		Amount:     150,
		OccurredAt: time.Now().UTC(),
	})

	require.NoError(t, c.handleMessage(context.Background(), msg))
	assert.Equal(t, 1, applier.calls)
	assert.Equal(t, "1718452800000", applier.bookingID)
	assert.Equal(t, float64(150), applier.amount)
}

func TestHandleMessage_ApplyFailurePropagates(t *testing.T) {
	applier := &applierStub{err: errors.New("booking not found")}
	c := &PaymentEventConsumer{bookings: applier, logger: zap.NewNop()}

	msg := paymentMessage(t, PaymentSucceeded, PaymentSucceededEvent{BookingID: "x", Amount: 10})
	assert.Error(t, c.handleMessage(context.Background(), msg))
}

func TestHandleMessage_SkipsMalformedAndUnknown(t *testing.T) {
	applier := &applierStub{}
	c := &PaymentEventConsumer{bookings: applier, logger: zap.NewNop()}

	// Malformed payloads are dropped, not retried.
	require.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: []byte("{not json")}))

	// Unknown event types are ignored.
	msg := paymentMessage(t, "payment.refunded", map[string]any{"booking_id": "b1"})
	require.NoError(t, c.handleMessage(context.Background(), msg))

	assert.Zero(t, applier.calls)
}
