package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/events"
)

// EventConfig selects where domain events go. Disabled or mock publishing
// records events in memory only.
type EventConfig struct {
	Enabled      bool   // EVENTS_ENABLED
	Publisher    string // EVENTS_PUBLISHER: kafka or mock
	KafkaBrokers string // KAFKA_BROKERS, comma separated
	Topic        string // EVENTS_TOPIC
}

// Brokers splits KAFKA_BROKERS, dropping empty entries.
func (c *EventConfig) Brokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// UsesKafka reports whether events should leave the process.
func (c *EventConfig) UsesKafka() bool {
	return c.Enabled && c.Publisher == "kafka"
}

// CreateEventPublisher builds the configured publisher. A Kafka publisher that
// cannot be created is an error so misconfiguration is not silently ignored.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.UsesKafka() {
		if c.Enabled && c.Publisher != "mock" {
			logger.Warn("Unknown event publisher, recording events in memory", "publisher", c.Publisher)
		} else {
			logger.Info("Recording domain events in memory", "enabled", c.Enabled)
		}
		return events.NewMockEventPublisher(logger), nil
	}

	logger.Info("Publishing domain events to Kafka", "brokers", c.Brokers(), "topic", c.Topic)
	return events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: c.Brokers(),
		TopicName:    c.Topic,
		Logger:       logger,
	})
}
