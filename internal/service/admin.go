package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/raffle-api/internal/config"
	"github.com/vietanh2810/raffle-api/internal/pkg/jwthelper"
)

const (
	adminSubject = "admin"
	adminRole    = "admin"
)

var ErrUnauthorized = errors.New("unauthorized")

type AdminSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminAuthService decides who may move numbers to paid. It keeps only a
// bcrypt hash of the configured admin password.
type AdminAuthService struct {
	passwordHash []byte
	signingKey   []byte
	issuer       string
	ttl          time.Duration
}

func NewAdminAuthService(apiConf *config.APIConfig, raffleConf *config.RaffleConfig) (*AdminAuthService, error) {
	return newAdminAuthService(apiConf, raffleConf, bcrypt.DefaultCost)
}

func newAdminAuthService(apiConf *config.APIConfig, raffleConf *config.RaffleConfig, cost int) (*AdminAuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raffleConf.AdminPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return &AdminAuthService{
		passwordHash: hash,
		signingKey:   []byte(apiConf.JWTSigningKey),
		issuer:       raffleConf.EventID,
		ttl:          apiConf.AdminTokenTTL,
	}, nil
}

// Login skips the bcrypt comparison when the request is already gone.
func (s *AdminAuthService) Login(ctx context.Context, password string) (AdminSession, error) {
	if err := ctx.Err(); err != nil {
		return AdminSession{}, fmt.Errorf("ctx.Err -> %w", err)
	}

	if err := s.VerifyPassword(password); err != nil {
		return AdminSession{}, err
	}

	token, expiresAt, err := jwthelper.GenerateToken(s.signingKey, s.issuer, adminSubject, adminRole, s.ttl)
	if err != nil {
		return AdminSession{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return AdminSession{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AdminAuthService) VerifyPassword(password string) error {
	if password == "" {
		return ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return ErrUnauthorized
	}

	return nil
}

func (s *AdminAuthService) VerifyToken(token string) error {
	claims, err := jwthelper.ParseToken(s.signingKey, s.issuer, strings.TrimSpace(token))
	if err != nil {
		return ErrUnauthorized
	}

	if claims.Subject != adminSubject || claims.Role != adminRole {
		return ErrUnauthorized
	}

	return nil
}
