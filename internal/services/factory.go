package services

import (
	"fmt"

	"github.com/onskyline/science-interview/internal/adapters/docstore"
	"github.com/onskyline/science-interview/internal/adapters/generation"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	InterviewService InterviewService
	AuthService      AuthService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(generator generation.Generator, store docstore.DocumentStore) (*ServiceContainer, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}

	return &ServiceContainer{
		InterviewService: NewInterviewService(generator),
		AuthService:      NewAuthService(store),
	}, nil
}
