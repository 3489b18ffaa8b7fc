package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/observability"
	"github.com/onskyline/science-interview/internal/prompts"
)

// RESTClient calls the generateContent method over plain HTTP.
// The API key travels as the "key" query parameter.
type RESTClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewRESTClient creates a REST generator. A nil httpClient uses a client
// without a timeout; the caller's context bounds the request.
func NewRESTClient(apiKey, model, baseURL string, httpClient *http.Client) *RESTClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RESTClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    httpClient,
	}
}

// Name implements Generator.Name
func (c *RESTClient) Name() string { return "rest" }

// Generate implements Generator.Generate
func (c *RESTClient) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	ctx, span := observability.StartLLMSpan(ctx, c.Name(), c.model)
	defer span.End()

	text, err := c.generate(ctx, prompt)
	observability.RecordError(span, err)
	return text, err
}

func (c *RESTClient) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
}

func (c *RESTClient) generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	data, err := json.Marshal(NewGenerateContentRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the API key
		return "", fmt.Errorf("generation API request failed: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(respBody),
			"model":       c.model,
		}).Error("Gemini API error")
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result GenerateContentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	text, ok := result.FirstText()
	if !ok {
		fields := logrus.Fields{
			"model":      c.model,
			"candidates": len(result.Candidates),
			"body":       string(respBody),
		}
		if result.PromptFeedback != nil {
			fields["block_reason"] = result.PromptFeedback.BlockReason
		}
		logrus.WithFields(fields).Warn("Gemini API returned no content")
		return FallbackText, nil
	}

	logrus.WithFields(logrus.Fields{
		"model":      c.model,
		"latency_ms": float64(time.Since(start).Nanoseconds()) / 1000000,
	}).Debug("Gemini API call completed")

	return text, nil
}

func redactURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}
