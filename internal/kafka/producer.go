package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EventFlightRecorded  = "flight_recorded"
	EventFlightsImported = "flights_imported"
)

// FlightEvent announces a change to a user's flight log. DistanceKm covers
// only the flights already flown when the event was built, and the totals are
// the user's flown distance around the write.
type FlightEvent struct {
	Type          string    `json:"type"`
	UserID        string    `json:"user_id"`
	FlightID      string    `json:"flight_id,omitempty"`
	Count         int       `json:"count"`
	DistanceKm    float64   `json:"distance_km"`
	TotalKmBefore float64   `json:"total_km_before"`
	TotalKmAfter  float64   `json:"total_km_after"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func DecodeFlightEvent(msg kafka.Message) (FlightEvent, error) {
	var ev FlightEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return ev, fmt.Errorf("failed to decode flight event: %w", err)
	}
	if ev.UserID == "" {
		return ev, fmt.Errorf("flight event without user id")
	}
	return ev, nil
}

type Producer struct {
	brokers []string
	topic   string
	writer  *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		topic:   topic,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	log.Printf("Published to Kafka - Topic: %s, Key: %s", topic, key)
	return nil
}

func (p *Producer) PublishWithRetry(ctx context.Context, topic, key string, payload interface{}, maxRetries int) error {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		err := p.Publish(ctx, topic, key, payload)
		if err == nil {
			return nil
		}

		lastErr = err
		log.Printf("Attempt %d failed: %v", i+1, err)

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			}
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// PublishFlightEvent keys the message by user so a user's events stay ordered.
func (p *Producer) PublishFlightEvent(ctx context.Context, ev FlightEvent) error {
	return p.PublishWithRetry(ctx, p.topic, ev.UserID, ev, 3)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	log.Printf("Connected to Kafka, %d partitions visible", len(partitions))
	return nil
}
