// Package handlers implements the single interview API endpoint.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/models"
	"github.com/onskyline/science-interview/internal/observability"
	"github.com/onskyline/science-interview/internal/services"
	"github.com/onskyline/science-interview/pkg/lambda"
)

// DefaultMaxBodyBytes bounds the request body when no limit is configured
const DefaultMaxBodyBytes int64 = 1 << 20

// APIHandler dispatches POSTed envelopes to the interview and auth services
type APIHandler struct {
	interview    services.InterviewService
	auth         services.AuthService
	maxBodyBytes int64
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(container *services.ServiceContainer, maxBodyBytes int64) *APIHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &APIHandler{
		interview:    container.InterviewService,
		auth:         container.AuthService,
		maxBodyBytes: maxBodyBytes,
	}
}

// Handle processes one request. It never returns nil and never panics:
// every failure becomes one of 400, 405 or 500.
func (h *APIHandler) Handle(ctx context.Context, req *lambda.Request) (resp *lambda.Response) {
	start := time.Now()
	logger := logrus.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"method":     req.Method,
		"path":       req.Path,
	})

	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
			resp = internalError()
		}

		logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"latency_ms":  float64(time.Since(start).Nanoseconds()) / 1000000,
		}).Debug("Request handled")
	}()

	if req.Method != http.MethodPost {
		return textResponse(http.StatusMethodNotAllowed, MessageMethodNotAllowed)
	}

	if int64(len(req.Body)) > h.maxBodyBytes {
		logger.WithField("size", len(req.Body)).Warn("Request body too large")
		return textResponse(http.StatusBadRequest, MessageInvalidBody)
	}

	envelope, err := models.DecodeEnvelope(req.Body)
	if err != nil {
		logger.WithError(err).Warn("Rejected request body")
		return textResponse(http.StatusBadRequest, MessageInvalidBody)
	}

	op, ok := envelope.Operation()
	if !ok {
		logger.WithField("type", string(envelope.Type)).Warn("Rejected request type")
		return textResponse(http.StatusBadRequest, MessageInvalidType)
	}

	logger = logger.WithField("operation", op.String())

	ctx, span := observability.StartOperationSpan(ctx, op.String())
	defer span.End()

	resp = h.dispatch(ctx, logger, op, envelope.Payload)
	observability.RecordStatus(span, resp.StatusCode)
	return resp
}

func (h *APIHandler) dispatch(ctx context.Context, logger *logrus.Entry, op models.OperationType, payload json.RawMessage) *lambda.Response {
	var result any
	var err error

	switch op {
	case models.OperationQuestion:
		result, err = h.handleQuestion(ctx, payload)
	case models.OperationFeedback:
		result, err = h.handleFeedback(ctx, payload)
	case models.OperationReport:
		result, err = h.handleReport(ctx, payload)
	case models.OperationLogin:
		result, err = h.handleLogin(ctx, payload)
	default:
		return textResponse(http.StatusBadRequest, MessageInvalidType)
	}

	if err != nil {
		if errors.Is(err, models.ErrInvalidPayload) {
			logger.WithError(err).Warn("Rejected request payload")
			return textResponse(http.StatusBadRequest, MessageInvalidPayload)
		}
		logger.WithError(err).Error("Operation failed")
		return internalError()
	}

	return jsonResponse(http.StatusOK, result)
}

func (h *APIHandler) handleQuestion(ctx context.Context, raw json.RawMessage) (any, error) {
	var payload models.QuestionPayload
	if err := models.DecodePayload(models.OperationQuestion, raw, &payload); err != nil {
		return nil, err
	}

	question, err := h.interview.GenerateQuestion(ctx, &payload)
	if err != nil {
		return nil, err
	}
	return models.QuestionResponse{Question: question}, nil
}

func (h *APIHandler) handleFeedback(ctx context.Context, raw json.RawMessage) (any, error) {
	var payload models.FeedbackPayload
	if err := models.DecodePayload(models.OperationFeedback, raw, &payload); err != nil {
		return nil, err
	}

	feedback, err := h.interview.GenerateFeedback(ctx, &payload)
	if err != nil {
		return nil, err
	}
	return models.FeedbackResponse{Feedback: feedback}, nil
}

func (h *APIHandler) handleReport(ctx context.Context, raw json.RawMessage) (any, error) {
	var payload models.ReportPayload
	if err := models.DecodePayload(models.OperationReport, raw, &payload); err != nil {
		return nil, err
	}

	report, err := h.interview.GenerateReport(ctx, &payload)
	if err != nil {
		return nil, err
	}
	return models.ReportResponse{Report: report}, nil
}

func (h *APIHandler) handleLogin(ctx context.Context, raw json.RawMessage) (any, error) {
	var payload models.LoginPayload
	if err := models.DecodePayload(models.OperationLogin, raw, &payload); err != nil {
		return nil, err
	}

	return h.auth.Login(ctx, payload.GetPassword())
}
