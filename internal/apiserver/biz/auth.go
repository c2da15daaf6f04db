package biz

import (
	"context"
	"strings"

	stderrors "errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/model"
	"github.com/kart-io/haven/pkg/auth/jwt"
	"github.com/kart-io/haven/pkg/errors"
)

const minPasswordLength = 8

// AuthService handles registration, login, and token issuance.
type AuthService struct {
	store store.Factory
	jwt   *jwt.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store store.Factory, manager *jwt.Manager) *AuthService {
	return &AuthService{store: store, jwt: manager}
}

// Register creates an account and returns the new user with a signed token.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*model.User, *jwt.Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < minPasswordLength {
		return nil, nil, errors.ErrWeakPassword
	}

	if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, nil, errors.ErrEmailTaken
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, errors.ErrDatabase.WithCause(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, errors.ErrInternal.WithCause(err)
	}

	user := &model.User{
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, nil, errors.ErrDatabase.WithCause(err)
	}

	token, err := s.jwt.Sign(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *jwt.Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.ErrInvalidCredentials
		}
		return nil, nil, errors.ErrDatabase.WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwt.Sign(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Me returns the account for the authenticated user ID.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAccountNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return user, nil
}
