package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/onskyline/science-interview/internal/adapters/docstore"
	"github.com/onskyline/science-interview/internal/models"
)

// Location of the reference password
const (
	PasswordCollection = "config"
	PasswordDocument   = "password"
	PasswordField      = "value"
)

// Login messages shown to the user
const (
	MessageIncorrectPassword = "비밀번호가 올바르지 않습니다."
	MessageNoPassword        = "DB에 비밀번호가 없습니다. 관리자에게 문의하세요."
)

// authService implements AuthService
type authService struct {
	store docstore.DocumentStore
}

// NewAuthService creates a new auth service
func NewAuthService(store docstore.DocumentStore) AuthService {
	return &authService{store: store}
}

// Login implements AuthService.Login
func (s *authService) Login(ctx context.Context, password string) (*models.LoginResponse, error) {
	doc, err := s.store.Get(ctx, PasswordCollection, PasswordDocument)
	if err != nil {
		if docstore.IsNotFound(err) {
			logrus.WithField("path", docstore.Path(PasswordCollection, PasswordDocument)).
				Warn("Password document is missing")
			return &models.LoginResponse{Success: false, Message: MessageNoPassword}, nil
		}
		return nil, fmt.Errorf("failed to read password document: %w", err)
	}

	// A missing or non-string field never matches
	stored, ok := doc.String(PasswordField)
	if !ok || stored != password {
		logrus.Info("Login rejected")
		return &models.LoginResponse{Success: false, Message: MessageIncorrectPassword}, nil
	}

	logrus.Info("Login accepted")
	return &models.LoginResponse{Success: true}, nil
}

// SetPassword implements AuthService.SetPassword
func (s *authService) SetPassword(ctx context.Context, value string) error {
	if value == "" {
		return errors.New("password cannot be empty")
	}

	doc := docstore.Document{PasswordField: value}
	if err := s.store.Set(ctx, PasswordCollection, PasswordDocument, doc); err != nil {
		return fmt.Errorf("failed to write password document: %w", err)
	}
	return nil
}
