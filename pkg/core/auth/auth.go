/*
 * Copyright 2025 FleetWatch Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package auth implements operator session authentication: password login
// against bcrypt hashes and HS256 JWT issuance and verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetwatch/fleetwatch/pkg/db"
	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session token")
)

// Claims is the JWT payload for operator sessions.
type Claims struct {
	Email          string `json:"email,omitempty"`
	OrganizationID string `json:"org_id,omitempty"`
	jwt.RegisteredClaims
}

// Config tunes the session service.
type Config struct {
	JWTSecret     string
	JWTExpiration time.Duration
}

// Service issues and verifies operator sessions.
type Service struct {
	config Config
	db     db.Service
	logger logger.Logger
}

// NewService builds a session service over the user store.
func NewService(cfg Config, database db.Service, log logger.Logger) *Service {
	if cfg.JWTExpiration == 0 {
		cfg.JWTExpiration = time.Hour
	}

	return &Service{
		config: cfg,
		db:     database,
		logger: log.WithComponent("auth"),
	}
}

// Login verifies an email/password pair and returns a fresh token pair.
// Unknown accounts and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Token, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("operator logged in")

	return token, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*models.Token, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidSession
	}

	user, err := s.db.GetUser(ctx, claims.Subject)
	if err != nil {
		return nil, ErrInvalidSession
	}

	return s.generateTokenPair(user)
}

// VerifyToken validates an access token and returns its claims.
func (s *Service) VerifyToken(_ context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

func (s *Service) generateTokenPair(user *models.User) (*models.Token, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.config.JWTExpiration)

	accessToken, err := s.signToken(user, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	// Refresh tokens live 24x longer than access tokens.
	refreshToken, err := s.signToken(user, now, now.Add(24*s.config.JWTExpiration))
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &models.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) signToken(user *models.User, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Email:          user.Email,
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
}

func (s *Service) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// HashPassword bcrypt-hashes a password for account provisioning.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}
