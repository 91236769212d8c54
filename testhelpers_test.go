//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/domain/booking"
	"github.com/stayfront/hotel-console/internal/domain/guest"
	"github.com/stayfront/hotel-console/internal/domain/room"
	"github.com/stayfront/hotel-console/internal/events"
	"github.com/stayfront/hotel-console/internal/notifier"
	"github.com/stayfront/hotel-console/internal/store"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	KafkaBrokers []string
	Cleanup      func()
}

// bookingStack holds wired-up booking service components backed by the
// in-memory store.
type bookingStack struct {
	Stores          *store.Stores
	Service         *application.BookingService
	Consumer        *events.PaymentEventConsumer
	CleanupProducer func()
}

// setupKafka starts a Kafka testcontainer and pre-creates the topics.
func setupKafka(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, brokers, events.TopicBookingEvents, events.TopicPaymentEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	}
	return &testInfra{KafkaBrokers: brokers, Cleanup: cleanup}
}

// setupBookingStack wires up the full booking engine stack.
func setupBookingStack(t *testing.T, brokers []string) *bookingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	stores := store.NewMemoryStores()
	producer := events.NewProducer(brokers, logger)
	hub := notifier.NewHub()
	sagas := application.NewSagaLog(0)
	svc := application.NewBookingService(stores, producer, hub, sagas, logger)

	groupID := fmt.Sprintf("test-booking-%s", uuid.New().String()[:8])
	consumer := events.NewPaymentEventConsumer(brokers, groupID, svc, logger)

	return &bookingStack{
		Stores:          stores,
		Service:         svc,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedConfirmedBooking inserts a confirmed booking with an open balance.
func seedConfirmedBooking(t *testing.T, stores *store.Stores, id string, total, advance float64) {
	t.Helper()
	checkIn := time.Now().AddDate(0, 0, 2).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)

	_, err := stores.Bookings.Create(context.Background(), booking.Booking{
		ID:              id,
		GuestID:         "1",
		RoomID:          "1",
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Status:          booking.StatusConfirmed,
		TotalAmount:     total,
		AdvancePaid:     advance,
		RemainingAmount: total - advance,
		GuestName:       "Test Guest",
		RoomNumber:      "101",
	})
	require.NoError(t, err, "failed to seed booking")
}

// seedRoomAndGuest inserts the room and guest a booking form references.
func seedRoomAndGuest(t *testing.T, stores *store.Stores) {
	t.Helper()
	ctx := context.Background()

	_, err := stores.Rooms.Create(ctx, room.Room{
		ID:        "1",
		Number:    "101",
		Type:      room.TypeDouble,
		Price:     100,
		Status:    room.StatusAvailable,
		Amenities: []string{"wifi"},
	})
	require.NoError(t, err, "failed to seed room")

	_, err = stores.Guests.Create(ctx, guest.Guest{
		ID:       "1",
		Name:     "Test Guest",
		Email:    "guest@example.com",
		Bookings: []booking.Booking{},
	})
	require.NoError(t, err, "failed to seed guest")
}

// bookingForm builds a staff booking form for room 1 and guest 1.
func bookingForm(checkIn, checkOut string) application.CreateBookingRequest {
	return application.CreateBookingRequest{
		GuestID:  "1",
		RoomID:   "1",
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data any) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := events.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := events.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForAdvancePaid polls the booking until its advance matches.
func waitForAdvancePaid(t *testing.T, stores *store.Stores, bookingID string, expected float64, timeout time.Duration) booking.Booking {
	t.Helper()
	var result booking.Booking
	require.Eventually(t, func() bool {
		b, err := stores.Bookings.Get(context.Background(), bookingID)
		if err != nil {
			return false
		}
		if b.AdvancePaid == expected {
			result = b
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "booking advance did not reach %v", expected)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) events.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := events.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
