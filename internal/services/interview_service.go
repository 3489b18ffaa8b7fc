package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/adapters/generation"
	"github.com/onskyline/science-interview/internal/models"
	"github.com/onskyline/science-interview/internal/prompts"
)

// interviewService implements InterviewService
type interviewService struct {
	generator generation.Generator
}

// NewInterviewService creates a new interview service
func NewInterviewService(generator generation.Generator) InterviewService {
	return &interviewService{generator: generator}
}

// GenerateQuestion implements InterviewService.GenerateQuestion
func (s *interviewService) GenerateQuestion(ctx context.Context, payload *models.QuestionPayload) (string, error) {
	return s.generate(ctx, models.OperationQuestion, prompts.Question(payload))
}

// GenerateFeedback implements InterviewService.GenerateFeedback
func (s *interviewService) GenerateFeedback(ctx context.Context, payload *models.FeedbackPayload) (string, error) {
	return s.generate(ctx, models.OperationFeedback, prompts.Feedback(payload))
}

// GenerateReport implements InterviewService.GenerateReport
func (s *interviewService) GenerateReport(ctx context.Context, payload *models.ReportPayload) (string, error) {
	return s.generate(ctx, models.OperationReport, prompts.Report(payload))
}

func (s *interviewService) generate(ctx context.Context, op models.OperationType, prompt prompts.Prompt) (string, error) {
	start := time.Now()

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", op, err)
	}

	logrus.WithFields(logrus.Fields{
		"operation":  op.String(),
		"backend":    s.generator.Name(),
		"latency_ms": float64(time.Since(start).Nanoseconds()) / 1000000,
	}).Debug("Generation completed")

	return text, nil
}
