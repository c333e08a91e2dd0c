package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// TokenIssuer signs session tokens. *auth.JWTManager implements it.
type TokenIssuer interface {
	GenerateToken(u domain.User) (string, time.Time, error)
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// SignInInput holds the parameters for signing in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput holds the editable profile fields.
type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordInput holds the parameters for a password change.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// Session is a signed-in user and their token.
type Session struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// AccountService implements registration, sign-in and profile management.
// Passwords are passed to the content API as entered; it stores them hashed.
type AccountService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserRepository, tokens TokenIssuer, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a guest account.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	user, err := s.users.Create(ctx, strings.TrimSpace(in.Name), email, in.Password, domain.RoleGuest)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("user", "email", email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return user, nil
}

// SignIn checks credentials and issues a session token.
func (s *AccountService) SignIn(ctx context.Context, in SignInInput) (*Session, error) {
	user, err := s.users.Authenticate(ctx, normalizeEmail(in.Email), in.Password)
	if err != nil {
		return nil, err
	}

	token, expires, err := s.tokens.GenerateToken(*user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed in", slog.String("user_id", user.ID))
	return &Session{User: user, Token: token, ExpiresAt: expires}, nil
}

// GetProfile returns the account of userID.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the name and email of userID.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	user, err := s.users.UpdateProfile(ctx, userID, strings.TrimSpace(in.Name), email)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("user", "email", email)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile updated", slog.String("user_id", userID))
	return user, nil
}

// ChangePassword sets a new password after checking the current one.
func (s *AccountService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	if in.CurrentPassword == in.NewPassword {
		return apperrors.InvalidInput("new password must differ from the current one")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if _, err := s.users.Authenticate(ctx, user.Email, in.CurrentPassword); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return apperrors.Unauthorized("current password is incorrect")
		}
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, in.NewPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", userID))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isUniqueViolation reports whether the content API refused a write
// because a unique field is already taken.
func isUniqueViolation(err error) bool {
	var gqlErr *graphql.ResponseError
	if !errors.As(err, &gqlErr) {
		return false
	}
	for _, msg := range gqlErr.Messages() {
		if strings.Contains(strings.ToLower(msg), "unique constraint") {
			return true
		}
	}
	return false
}
