package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/onskyline/science-interview/internal/observability"
	"github.com/onskyline/science-interview/internal/prompts"
)

// SDKClient calls the generation API through the official genai SDK
type SDKClient struct {
	client *genai.Client
	model  string
}

// NewSDKClient creates an SDK-backed generator against baseURL,
// which may end in an API version segment such as "/v1beta".
func NewSDKClient(ctx context.Context, apiKey, model, baseURL string, httpClient *http.Client) (*SDKClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	httpOptions, err := splitBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &SDKClient{client: client, model: model}, nil
}

// Name implements Generator.Name
func (c *SDKClient) Name() string { return "sdk" }

// Generate implements Generator.Generate
func (c *SDKClient) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	ctx, span := observability.StartLLMSpan(ctx, c.Name(), c.model)
	defer span.End()

	text, err := c.generate(ctx, prompt)
	observability.RecordError(span, err)
	return text, err
}

func (c *SDKClient) generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
	})
	if err != nil {
		if upstreamErr := asUpstreamError(err); upstreamErr != nil {
			logrus.WithFields(logrus.Fields{
				"status_code": upstreamErr.StatusCode,
				"body":        upstreamErr.Body,
				"model":       c.model,
			}).Error("Gemini API error")
			return "", upstreamErr
		}
		return "", fmt.Errorf("generation API request failed: %w", err)
	}

	if text, ok := firstCandidateText(resp); ok {
		return text, nil
	}

	fields := logrus.Fields{"model": c.model}
	if resp != nil {
		fields["candidates"] = len(resp.Candidates)
		if resp.PromptFeedback != nil {
			fields["block_reason"] = string(resp.PromptFeedback.BlockReason)
		}
	}
	logrus.WithFields(fields).Warn("Gemini API returned no content")
	return FallbackText, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", false
	}
	part := candidate.Content.Parts[0]
	if part == nil {
		return "", false
	}
	return part.Text, true
}

func asUpstreamError(err error) *UpstreamError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &UpstreamError{StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return nil
}

// splitBaseURL separates a trailing version segment from the host part,
// the form the SDK expects.
func splitBaseURL(baseURL string) (genai.HTTPOptions, error) {
	if baseURL == "" {
		return genai.HTTPOptions{}, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return genai.HTTPOptions{}, fmt.Errorf("invalid generation base URL %q: %w", baseURL, err)
	}

	version := path.Base(u.Path)
	if !strings.HasPrefix(version, "v1") {
		return genai.HTTPOptions{BaseURL: strings.TrimSuffix(baseURL, "/") + "/"}, nil
	}

	u.Path = strings.TrimSuffix(u.Path, version)
	return genai.HTTPOptions{BaseURL: u.String(), APIVersion: version}, nil
}
