// Package server wires configuration, adapters and services into the
// handler used by both the local server and the function entrypoint.
package server

import (
	"context"
	"fmt"

	"github.com/onskyline/science-interview/internal/adapters/docstore"
	"github.com/onskyline/science-interview/internal/adapters/generation"
	"github.com/onskyline/science-interview/internal/config"
	"github.com/onskyline/science-interview/internal/handlers"
	"github.com/onskyline/science-interview/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Store      docstore.DocumentStore
	Generator  generation.Generator
	Services   *services.ServiceContainer
	APIHandler *handlers.APIHandler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	store, err := docstore.CreateFromConfig(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}

	generator, err := generation.NewGenerator(ctx, cfg.Generation, nil)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	serviceContainer, err := services.NewServiceContainer(generator, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:     cfg,
		Store:      store,
		Generator:  generator,
		Services:   serviceContainer,
		APIHandler: handlers.NewAPIHandler(serviceContainer, cfg.MaxBodyBytes),
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			return fmt.Errorf("failed to close document store: %w", err)
		}
	}
	return nil
}
