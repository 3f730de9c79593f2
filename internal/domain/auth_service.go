package domain

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/saywith/saywith-server/internal/ports"
)

type authService struct {
	pin    string
	secret string
}

// NewAuthService gates the interface behind a single shared PIN. A matching
// PIN mints a session token; nothing is persisted.
func NewAuthService(pin, secret string) ports.AuthService {
	return &authService{
		pin:    pin,
		secret: secret,
	}
}

func (s *authService) Login(ctx context.Context, pin string) (string, error) {
	if pin == "" || pin != s.pin {
		return "", errors.New("invalid pin")
	}
	return s.sign("allowed"), nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (bool, error) {
	valid := s.sign("allowed")
	return hmac.Equal([]byte(token), []byte(valid)), nil
}

func (s *authService) sign(msg string) string {
	h := hmac.New(sha256.New, []byte(s.secret))
	h.Write([]byte(msg))
	return hex.EncodeToString(h.Sum(nil))
}
