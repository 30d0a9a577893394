package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type TopicConfig struct {
	Brokers []string
	Topic   string
}

// AuditTopicSink publishes flushed audit entries to a Kafka topic, keyed by employee.
type AuditTopicSink struct {
	writer kafkaWriter
	topic  string
}

func NewAuditTopicSink(cfg TopicConfig) (*AuditTopicSink, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		if trimmed := strings.TrimSpace(b); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers required")
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		return nil, fmt.Errorf("kafka topic required")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &AuditTopicSink{writer: w, topic: topic}, nil
}

// Write publishes the batch in one call. Entries without an employee share the empty key.
func (s *AuditTopicSink) Write(ctx context.Context, entries []audit.Entry) error {
	if s == nil || s.writer == nil {
		return fmt.Errorf("kafka sink not initialized")
	}
	if len(entries) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		value, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode audit entry %s: %w", e.ID, err)
		}
		var key []byte
		if e.EmployeeID != nil {
			key = []byte(*e.EmployeeID)
		}
		msgs = append(msgs, kafka.Message{Key: key, Value: value, Time: e.Timestamp})
	}

	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish audit entries to topic %s: %w", s.topic, err)
	}
	return nil
}

func (s *AuditTopicSink) Close() error {
	if s == nil || s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

var _ audit.Sink = (*AuditTopicSink)(nil)
