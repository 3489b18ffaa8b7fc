package generation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/config"
)

const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// NewGenerator creates a generator for the configured backend
func NewGenerator(ctx context.Context, cfg config.GenerationConfig, httpClient *http.Client) (Generator, error) {
	if cfg.APIKey == "" {
		logrus.Warn("GEMINI_API_KEY is not set; generation requests will fail")
	}

	switch cfg.Backend {
	case BackendREST, "":
		return NewRESTClient(cfg.APIKey, cfg.Model, cfg.BaseURL, httpClient), nil
	case BackendSDK:
		if cfg.APIKey == "" {
			// The SDK refuses to start without a key; keep the service up
			// so that login still works.
			return NewRESTClient(cfg.APIKey, cfg.Model, cfg.BaseURL, httpClient), nil
		}
		return NewSDKClient(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, httpClient)
	default:
		return nil, fmt.Errorf("unsupported generation backend: %s", cfg.Backend)
	}
}
