package services

import (
	"context"

	"github.com/onskyline/science-interview/internal/models"
)

// InterviewService defines the generation operations behind the interview flow.
// Each call formats one prompt and makes exactly one generation request.
type InterviewService interface {
	// GenerateQuestion asks for a single interview question on a topic
	GenerateQuestion(ctx context.Context, payload *models.QuestionPayload) (string, error)

	// GenerateFeedback evaluates a student's answer to one question
	GenerateFeedback(ctx context.Context, payload *models.FeedbackPayload) (string, error)

	// GenerateReport summarises a whole interview session
	GenerateReport(ctx context.Context, payload *models.ReportPayload) (string, error)
}

// AuthService defines the shared-password check
type AuthService interface {
	// Login compares password with the stored reference value.
	// A mismatch or a missing document is not an error; it yields success=false.
	Login(ctx context.Context, password string) (*models.LoginResponse, error)

	// SetPassword stores a new reference value
	SetPassword(ctx context.Context, value string) error
}
