package services

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "q@example.com")
	interview := env.createInterview(t, user.ID, "SE", 60, 300)
	iid := int(interview.ID)

	question, err := env.services.Questions.Create(ctx, &CreateQuestionRequest{
		InterviewID:    &iid,
		QuestionText:   "  Why Go?  ",
		QuestionNumber: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "Why Go?", question.QuestionText)
	assert.False(t, question.AskedAt.IsZero())
	assert.Nil(t, question.AnsweredAt)

	_, err = env.services.Questions.Create(ctx, &CreateQuestionRequest{InterviewID: &iid, QuestionText: "Again", QuestionNumber: ptr(1)})
	assert.ErrorIs(t, err, ErrDuplicateQuestionNumber)

	_, err = env.services.Questions.Create(ctx, &CreateQuestionRequest{InterviewID: ptr(404), QuestionText: "Lost", QuestionNumber: ptr(1)})
	assert.ErrorIs(t, err, ErrInvalidInterviewRef)

	tests := []struct {
		name string
		req  CreateQuestionRequest
		code string
	}{
		{"missing interview", CreateQuestionRequest{QuestionText: "x", QuestionNumber: ptr(2)}, "MISSING_INTERVIEW_ID"},
		{"missing text", CreateQuestionRequest{InterviewID: &iid, QuestionNumber: ptr(2)}, "MISSING_QUESTION_TEXT"},
		{"blank text", CreateQuestionRequest{InterviewID: &iid, QuestionText: " ", QuestionNumber: ptr(2)}, "INVALID_QUESTION_TEXT"},
		{"missing number", CreateQuestionRequest{InterviewID: &iid, QuestionText: "x"}, "MISSING_QUESTION_NUMBER"},
		{"zero number", CreateQuestionRequest{InterviewID: &iid, QuestionText: "x", QuestionNumber: ptr(0)}, "INVALID_QUESTION_NUMBER"},
		{"zero time taken", CreateQuestionRequest{InterviewID: &iid, QuestionText: "x", QuestionNumber: ptr(2), TimeTaken: ptr(0)}, "INVALID_TIME_TAKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.Questions.Create(ctx, &tt.req)
			assert.True(t, apperrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestQuestionService_UpdateStampsAnsweredAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "qa@example.com")
	interview := env.createInterview(t, user.ID, "SE", 60, 300)

	question, err := env.services.Questions.Create(ctx, &CreateQuestionRequest{
		InterviewID:    ptr(int(interview.ID)),
		QuestionText:   "Tell me more",
		QuestionNumber: ptr(1),
	})
	require.NoError(t, err)

	_, err = env.services.Questions.Update(ctx, question.ID, &UpdateQuestionRequest{})
	assert.ErrorIs(t, err, ErrNoUpdates)

	updated, err := env.services.Questions.Update(ctx, question.ID, &UpdateQuestionRequest{AnswerText: ptr(" My answer "), TimeTaken: ptr(42)})
	require.NoError(t, err)
	require.NotNil(t, updated.AnsweredAt)
	assert.Equal(t, "My answer", *updated.AnswerText)
	assert.Equal(t, 42, *updated.TimeTaken)
	first := *updated.AnsweredAt

	time.Sleep(time.Millisecond)
	updated, err = env.services.Questions.Update(ctx, question.ID, &UpdateQuestionRequest{AnswerText: ptr("Revised")})
	require.NoError(t, err)
	assert.True(t, first.Equal(*updated.AnsweredAt))

	answered := true
	list, total, err := env.services.Questions.List(ctx, repositories.QuestionFilters{InterviewID: &interview.ID, Answered: &answered})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	deleted, err := env.services.Questions.Delete(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, question.ID, deleted.ID)
	_, err = env.services.Questions.GetByID(ctx, question.ID)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
