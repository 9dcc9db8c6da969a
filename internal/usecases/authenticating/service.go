package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Authenticator interface {
	GenerateToken(subject, role string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
	now func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

// GenerateToken emite um JWT HS256 para operadores da API administrativa
func (s *Service) GenerateToken(subject, role string, ttl time.Duration) (string, error) {
	if s.cfg.Auth.Secret == "" {
		return "", ErrMissingSecret
	}

	now := s.now()
	claims := &domain.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if s.cfg.Auth.Secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
