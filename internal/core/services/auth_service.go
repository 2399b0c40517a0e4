package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/corelend/command_audit_app/internal/apperrors"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/dto"
	"github.com/corelend/command_audit_app/internal/middleware"
	"github.com/corelend/command_audit_app/internal/platform/config"
	"github.com/corelend/command_audit_app/internal/utils"
)

// authService authenticates users and issues JWTs.
type authService struct {
	userRepo  portsrepo.UserReader
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserReader) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiryDuration,
		jwtIssuer: cfg.JWTIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns a signed JWT.
func (s *authService) Login(ctx context.Context, username string, password string) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same outcome as a bad password; do not leak which usernames exist.
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.jwtIssuer,
		Subject:   user.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		logger.Error("Failed to sign JWT", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternal)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{Token: signed}, nil
}
