package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/unit-converter-service/internal/config"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces conversion events to a Kafka topic.
// It implements converter.Publisher and converter.ReadinessChecker.
type Publisher struct {
	writer  *kafkago.Writer
	brokers []string
	timeout time.Duration
	logger  *slog.Logger
}

// publishBatchTimeout bounds the flush delay of a partially filled batch.
const publishBatchTimeout = 5 * time.Millisecond

// NewPublisher creates a Kafka producer for the configured audit topic.
// Events are written one at a time from the request path, so batches hold
// a single message and flush immediately.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchSize:              1,
		BatchTimeout:           publishBatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{
		writer:  w,
		brokers: cfg.KafkaBrokers,
		timeout: cfg.KafkaWriteTimeout,
		logger:  logger,
	}
}

// Publish serializes and writes a single event, bounded by the write timeout.
func (p *Publisher) Publish(ctx context.Context, event domain.ConversionEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write conversion event: %w", err)
	}
	p.logger.Debug("conversion event published", "event_id", event.ID, "topic", p.writer.Topic)
	return nil
}

// CheckReadiness succeeds when at least one broker accepts a connection.
func (p *Publisher) CheckReadiness(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	var dialer kafkago.Dialer
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		_ = conn.Close()
		return nil
	}
	return fmt.Errorf("kafka brokers unreachable: %w", lastErr)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a ConversionEvent into a Kafka message keyed by event ID.
func serializeToMessage(event domain.ConversionEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize conversion event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(event.Category)},
			{Key: "converted_at", Value: []byte(event.ConvertedAt.Format(time.RFC3339))},
		},
	}, nil
}
