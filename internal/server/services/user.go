// Package services contains the business logic of the development server.
// This file implements UserService, which handles signup, login, token
// verification and profile changes.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/decipline/internal/cryptox"
	"github.com/dmitrijs2005/decipline/internal/server/auth"
	"github.com/dmitrijs2005/decipline/internal/server/config"
	"github.com/dmitrijs2005/decipline/internal/server/models"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/decipline/internal/shared"
)

// Roles accepted by UpdateProfile.
var Roles = []string{"student", "professional", "other"}

const minPasswordLength = 6

// UserService provides account operations:
// - Signup / Login: verify credentials and mint access tokens
// - Authenticate: resolve a bearer token to its user
// - UpdateProfile / Upgrade: change the stored account
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Signup creates an account and signs it in.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, fmt.Errorf("%w: invalid email", shared.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", shared.ErrorValidation, minPasswordLength)
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return "", nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return "", nil, fmt.Errorf("%w: email already registered", shared.ErrorAlreadyExists)
		}
		return "", nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies the password and, on success, returns a new access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repomanager.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", nil, shared.ErrorInvalidLoginPassword
		}
		return "", nil, err
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, []byte(password))
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, shared.ErrorInvalidLoginPassword
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate resolves an access token to the stored user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.repomanager.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// Get returns the user with the given ID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users().GetUserByID(ctx, id)
}

// UpdateProfile stores role, subject and goal. Blank values clear the field.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, role, subject, goal string) (*models.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "" && !slices.Contains(Roles, role) {
		return nil, fmt.Errorf("%w: unknown role %q", shared.ErrorValidation, role)
	}

	user, err := s.repomanager.Users().GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = optional(role)
	user.Subject = optional(subject)
	user.Goal = optional(goal)

	if err := s.repomanager.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Upgrade moves the account to the premium plan. Upgrading twice is a no-op.
func (s *UserService) Upgrade(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users().GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Premium {
		return user, nil
	}
	user.Premium = true
	if err := s.repomanager.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID int64) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
