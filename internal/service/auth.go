package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/hearth/backend/config"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/types"
)

const tokenIssuer = "hearth"

// AuthService checks the shared household password and issues bearer tokens
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
	ttl          time.Duration
	household    config.HouseholdConfig
	now          func() time.Time
}

// NewAuthService builds the service. A plaintext password is hashed once here.
func NewAuthService(auth config.AuthConfig, household config.HouseholdConfig) (*AuthService, error) {
	if auth.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	hash := []byte(auth.PasswordHash)
	if len(hash) == 0 {
		if auth.Password == "" {
			return nil, errors.New("household password or hash is required")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(auth.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash household password: %w", err)
		}
	}
	ttl := auth.TokenTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &AuthService{
		passwordHash: hash,
		jwtSecret:    []byte(auth.JWTSecret),
		ttl:          ttl,
		household:    household,
		now:          time.Now,
	}, nil
}

// Login exchanges the household password for a signed token
func (s *AuthService) Login(_ context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logging.Warn("household login rejected")
		return "", ErrInvalidCredentials
	}
	return s.GenerateToken()
}

// GenerateToken signs a fresh household token
func (s *AuthService) GenerateToken() (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   "household",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Household: tokenIssuer,
		PersonA:   s.household.PersonA,
		PersonB:   s.household.PersonB,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		logging.Error("failed to sign token", zap.Error(err))
		return "", err
	}
	return signed, nil
}

// ValidateToken parses a bearer token and checks its signature, issuer and expiry
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
