package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/onskyline/science-interview/internal/models"
	"github.com/onskyline/science-interview/pkg/lambda"
)

// Caller-visible error messages
const (
	MessageMethodNotAllowed = "Method Not Allowed"
	MessageInvalidBody      = "Invalid request body"
	MessageInvalidType      = "Invalid request type"
	MessageInvalidPayload   = "Invalid request payload"
	MessageInternalError    = "Internal Server Error"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// internalErrorBody is pre-encoded so the 500 path cannot fail
var internalErrorBody = []byte(`{"error":"Internal Server Error"}`)

func textResponse(status int, message string) *lambda.Response {
	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": contentTypeText},
		Body:       []byte(message),
	}
}

func jsonResponse(status int, v any) *lambda.Response {
	body, err := json.Marshal(v)
	if err != nil {
		return internalError()
	}
	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       body,
	}
}

func internalError() *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       internalErrorBody,
	}
}

// errorBody is the JSON body used for non-dispatch errors on the local server
func errorBody(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}
