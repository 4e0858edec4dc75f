package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tallerpro/booking-api/config"
	"github.com/tallerpro/booking-api/internal/model"
	"github.com/tallerpro/booking-api/internal/upstream"
	"github.com/tallerpro/booking-api/internal/validation"
	"github.com/tallerpro/booking-api/pkg/apperror"
)

// API is the slice of the backend auth context this service proxies to.
type API interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.Usuario, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Usuario, error)
}

// Claims is the session token payload for the admin dashboard.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	jwt.RegisteredClaims
}

// Service verifies credentials against the backend and issues the local
// session token. Passwords are never stored or compared here.
type Service struct {
	client API
	secret []byte
	expiry time.Duration
	logger zerolog.Logger
}

func NewService(client API, cfg config.JWTConfig, logger zerolog.Logger) *Service {
	return &Service{
		client: client,
		secret: []byte(cfg.Secret),
		expiry: time.Duration(cfg.ExpiryHours) * time.Hour,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.SessionToken, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, mapAuthError(err)
	}
	return s.issue(user)
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.SessionToken, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, mapAuthError(err)
	}
	return s.issue(user)
}

func (s *Service) issue(user *model.Usuario) (*model.SessionToken, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Nombre: user.Nombre,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &model.SessionToken{Token: token, Usuario: user}, nil
}

// Verify parses and validates a session token.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperror.Unauthorized("invalid or expired session")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.Unauthorized("invalid or expired session")
	}
	return claims, nil
}

func mapAuthError(err error) *apperror.AppError {
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		return apperror.Internal(err)
	}
	if upErr.IsServerError() {
		return apperror.Unavailable(err)
	}
	// Any 4xx from the auth backend reads as bad credentials.
	return apperror.Unauthorized("invalid credentials")
}
