package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// Metadata keys set on every Kafka message
const (
	MetadataEventType    = "event_type"
	MetadataSource       = "source"
	MetadataVersion      = "version"
	MetadataTimestamp    = "timestamp"
	MetadataPartitionKey = "partition_key"
	MetadataRequestID    = "request_id"
)

// KafkaEventPublisher publishes events to one topic through Watermill. Events
// of the same interview (or user, when no interview is involved) share a
// partition so consumers see them in order.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	if len(config.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("no Kafka brokers configured")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.NewWithPartitioningMarshaler(partitionKey),
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    config.Logger.With("topic", config.TopicName),
		topicName: config.TopicName,
	}, nil
}

func partitionKey(_ string, msg *message.Message) (string, error) {
	return msg.Metadata.Get(MetadataPartitionKey), nil
}

// NewMessage builds the Watermill message for an event. The envelope fields
// are copied into metadata so consumers can route without decoding the payload.
func NewMessage(ctx context.Context, event *Event) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set(MetadataEventType, string(event.Type))
	msg.Metadata.Set(MetadataSource, event.Source)
	msg.Metadata.Set(MetadataVersion, event.Version)
	msg.Metadata.Set(MetadataTimestamp, event.Timestamp.Format(time.RFC3339))
	msg.Metadata.Set(MetadataPartitionKey, event.PartitionKey())
	if requestID := utils.RequestIDFromContext(ctx); requestID != "" {
		msg.Metadata.Set(MetadataRequestID, requestID)
	}
	msg.SetContext(ctx)
	return msg, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event *Event) error {
	msg, err := NewMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.logger.DebugContext(ctx, "Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"partition_key", msg.Metadata.Get(MetadataPartitionKey))
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher keeps events in memory. It is used when publishing is
// disabled and in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []Event
	Logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &MockEventPublisher{
		Events: make([]Event, 0),
		Logger: logger,
	}
}

// Publish stores the event in memory
func (m *MockEventPublisher) Publish(ctx context.Context, event *Event) error {
	m.mu.Lock()
	m.Events = append(m.Events, *event)
	m.mu.Unlock()

	m.Logger.DebugContext(ctx, "Event recorded",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of all published events
func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.Events))
	copy(out, m.Events)
	return out
}

// EventsOfType returns the published events of one type
func (m *MockEventPublisher) EventsOfType(eventType EventType) []Event {
	var out []Event
	for _, event := range m.GetPublishedEvents() {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

// ClearEvents clears all published events
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Events = make([]Event, 0)
}
