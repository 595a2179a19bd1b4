package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/johnquangdev/meeting-reporter/errors"
	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
	"github.com/johnquangdev/meeting-reporter/pkg/jwt"
)

const refreshTokenKeyPrefix = "refresh_token:"

// UserRepository is the persistence surface the auth service needs
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

// Service handles password authentication and token lifecycle. Refresh
// tokens are stored hashed in Redis so a database leak cannot replay them
// and logout can revoke them instantly.
type Service struct {
	userRepo   UserRepository
	redis      *redis.Client
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewService creates a new auth service
func NewService(userRepo UserRepository, redisClient *redis.Client, jwtManager *jwt.Manager, logger *zap.Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		redis:      redisClient,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// SignupRequest represents a registration request
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User         *entities.User `json:"user"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
}

// Signup registers a new user and signs them in
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists(req.Email)
	} else if err != entities.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.NewUser(req.Email, req.Name)
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueTokens(ctx, user)
}

// Login authenticates a user by email and password
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials()
	}

	if !user.IsActive {
		return nil, apperrors.ErrForbidden("account is deactivated")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to update last login", zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token is revoked, so each token works exactly once.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken()
	}

	key := refreshTokenKeyPrefix + jwt.HashToken(req.RefreshToken)
	deleted, err := s.redis.Del(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if deleted == 0 {
		return nil, apperrors.ErrInvalidRefreshToken()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, apperrors.ErrInvalidRefreshToken()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	key := refreshTokenKeyPrefix + jwt.HashToken(refreshToken)
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// CurrentUser loads the authenticated user's profile
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == entities.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *Service) issueTokens(ctx context.Context, user *entities.User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	key := refreshTokenKeyPrefix + jwt.HashToken(refreshToken)
	if err := s.redis.Set(ctx, key, user.ID.String(), s.jwtManager.GetRefreshExpiry()).Err(); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry() / time.Second),
	}, nil
}
