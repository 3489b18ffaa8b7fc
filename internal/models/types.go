package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OperationType selects which of the supported request kinds is invoked
type OperationType string

const (
	OperationQuestion OperationType = "question"
	OperationFeedback OperationType = "feedback"
	OperationReport   OperationType = "report"
	OperationLogin    OperationType = "login"
)

// Operations lists every supported operation type
var Operations = []OperationType{
	OperationQuestion,
	OperationFeedback,
	OperationReport,
	OperationLogin,
}

// ParseOperationType converts a raw type tag into an OperationType.
// The second return value is false for unrecognized tags.
func ParseOperationType(s string) (OperationType, bool) {
	for _, op := range Operations {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// String returns the wire representation of the operation type
func (o OperationType) String() string {
	return string(o)
}

// Envelope is the request body accepted by the API endpoint.
// Type is kept raw so that a non-string tag is reported as an unknown type
// rather than a malformed body.
type Envelope struct {
	Type    json.RawMessage `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Operation resolves the type tag. The second return value is false when the
// tag is absent, not a string, or not a supported operation.
func (e *Envelope) Operation() (OperationType, bool) {
	var tag string
	if err := json.Unmarshal(e.Type, &tag); err != nil {
		return "", false
	}
	return ParseOperationType(tag)
}

// DecodeEnvelope parses a raw request body into an Envelope
func DecodeEnvelope(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidBody)
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	return &env, nil
}

// QuestionResponse is returned by the question operation
type QuestionResponse struct {
	Question string `json:"question"`
}

// FeedbackResponse is returned by the feedback operation
type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// ReportResponse is returned by the report operation
type ReportResponse struct {
	Report string `json:"report"`
}

// LoginResponse is returned by the login operation.
// Message is omitted on success.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the opaque body returned for internal failures
type ErrorResponse struct {
	Error string `json:"error"`
}
