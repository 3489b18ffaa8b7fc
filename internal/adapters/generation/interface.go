// Package generation calls the external text-generation API.
package generation

import (
	"context"

	"github.com/onskyline/science-interview/internal/prompts"
)

// FallbackText is returned when the API answers successfully but produces no
// usable content, for example when a safety filter blocked the response.
const FallbackText = "죄송합니다, AI가 응답을 생성할 수 없습니다. 안전 필터에 의해 차단되었거나 다른 문제가 발생했을 수 있습니다."

// Generator turns a prompt pair into generated text.
//
// Implementations issue exactly one upstream request per call: no retry,
// no streaming, no caching. An empty or filtered result is not an error and
// yields FallbackText.
type Generator interface {
	Generate(ctx context.Context, prompt prompts.Prompt) (string, error)

	// Name returns the backend identifier ("rest" or "sdk")
	Name() string
}

// GenerateContentRequest is the request body of the generateContent method
type GenerateContentRequest struct {
	Contents          []Content `json:"contents"`
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
}

// Content is a list of parts
type Content struct {
	Parts []Part `json:"parts"`
}

// Part holds one text fragment
type Part struct {
	Text string `json:"text"`
}

// GenerateContentResponse is the subset of the generateContent response that is consumed
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Candidate is one generated alternative
type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// PromptFeedback reports why a prompt was blocked
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// NewGenerateContentRequest builds the wire body for a prompt pair
func NewGenerateContentRequest(prompt prompts.Prompt) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents:          []Content{{Parts: []Part{{Text: prompt.User}}}},
		SystemInstruction: &Content{Parts: []Part{{Text: prompt.System}}},
	}
}

// FirstText returns the text of the first part of the first candidate
func (r *GenerateContentResponse) FirstText() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	return content.Parts[0].Text, true
}
