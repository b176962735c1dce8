package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/interview-coach/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func TestEventService_PublishFailureDoesNotFailRequest(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e *events.Event) bool {
		return e.Type == events.EventUserCreated
	})).Return(errors.New("broker down")).Once()

	env := newTestEnv(t, func(d *Dependencies) { d.Publisher = publisher })

	user, err := env.services.Users.Create(context.Background(), &CreateUserRequest{Email: "kim@example.com", FullName: "Kim"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	publisher.AssertExpectations(t)
}

func TestEventService_PublishDetachesCancellation(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewEventService(publisher, nil).QuestionsGenerated(ctx, 4, 5, SourceAI)
	publisher.AssertExpectations(t)
}
