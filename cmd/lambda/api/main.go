package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/config"
	"github.com/onskyline/science-interview/internal/logging"
	"github.com/onskyline/science-interview/internal/observability"
	"github.com/onskyline/science-interview/pkg/server"
)

const (
	version      = "1.0.0"
	flushTimeout = 2 * time.Second
)

var (
	connections = server.GetConnectionManager()
	tracing     *observability.TracerProvider
)

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	tracing, err = observability.InitTracing(context.Background(), &observability.TracingConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
	})
	if err != nil {
		panic("Failed to initialize tracing: " + err.Error())
	}

	if err := connections.Initialize(context.Background(), cfg); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"mode":       config.GetDeploymentMode(),
		"store":      cfg.Store.Type,
		"generation": cfg.Generation.Backend,
		"tracing":    cfg.Tracing.OTLPEndpoint != "",
	}).Info("Function initialized")
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	defer flushSpans()

	container, err := connections.GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get container")
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"Internal Server Error"}`,
		}, nil
	}

	return container.APIHandler.HandleAPIGateway(ctx, event), nil
}

func flushSpans() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := tracing.ForceFlush(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to flush traces")
	}
}

func main() {
	awslambda.Start(handler)
}
