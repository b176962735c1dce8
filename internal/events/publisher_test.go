package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageCarriesEnvelopeMetadata(t *testing.T) {
	event := NewQuestionsGeneratedEvent(7, 5, "fallback")

	msg, err := NewMessage(utils.WithRequestID(context.Background(), "req-1"), event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, "questions.generated", msg.Metadata.Get("event_type"))
	assert.Equal(t, "interview-coach", msg.Metadata.Get("source"))
	assert.Equal(t, "1.0", msg.Metadata.Get("version"))
	assert.Equal(t, "interview-7", msg.Metadata.Get(MetadataPartitionKey))
	assert.Equal(t, "req-1", msg.Metadata.Get(MetadataRequestID))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["interviewId"])
	assert.Equal(t, "fallback", data["source"])
}

func TestEventIDsAreUUIDs(t *testing.T) {
	first := NewUserCreatedEvent(1, "a@example.com", "user")
	second := NewUserCreatedEvent(1, "a@example.com", "user")

	_, err := uuid.Parse(first.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, EventSource, first.Source)
}

func TestPartitionKeys(t *testing.T) {
	assert.Equal(t, "user-3", NewUserCreatedEvent(3, "a@example.com", "user").PartitionKey())
	assert.Equal(t, "user-3", NewResumeUploadedEvent(9, 3, "cv.pdf", nil).PartitionKey())
	assert.Equal(t, "interview-4", NewEvaluationCreatedEvent(1, 4, 3, 80).PartitionKey())

	partition, err := partitionKey("topic", mustMessage(t, NewInterviewCompletedEvent(5, 3, "QA", nil, nil)))
	require.NoError(t, err)
	assert.Equal(t, "interview-5", partition)

	_, err = NewKafkaEventPublisher(PublisherConfig{TopicName: "events"})
	assert.Error(t, err)
}

func mustMessage(t *testing.T, event *Event) *message.Message {
	t.Helper()
	msg, err := NewMessage(context.Background(), event)
	require.NoError(t, err)
	return msg
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, NewUserCreatedEvent(1, "a@example.com", "user")))
	require.NoError(t, publisher.Publish(ctx, NewInterviewCreatedEvent(2, 1, "Data Scientist", 120, 600)))

	assert.Len(t, publisher.GetPublishedEvents(), 2)
	assert.Len(t, publisher.EventsOfType(EventInterviewCreated), 1)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}
