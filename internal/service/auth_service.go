package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/apperrors"
	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("a user with this email already exists")
)

// AuthService handles registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// password is never persisted.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	// Check if the email is already taken
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index on email is the real guarantee; the FindByEmail
		// check above only produces the friendly error outside of races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed session token. The bcrypt
// comparison is constant time.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

// Logout revokes a session token until its natural expiry. Logout is
// idempotent: a token that is malformed, expired, or already revoked is
// treated as already logged out.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	return s.sessions.Revoke(ctx, claims.ID, ttl)
}
