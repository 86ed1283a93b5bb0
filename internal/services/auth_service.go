package services

import (
	"time"

	"stockroom/internal/apperr"
	"stockroom/internal/auth"
	"stockroom/internal/domain"
	"stockroom/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users    *repos.UserRepo
	Secret   string
	TokenTTL time.Duration
}

// Login checks credentials and issues a bearer token. Failures are
// deliberately indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, apperr.Authf("invalid email or password")
	}
	if !u.Active {
		return "", nil, apperr.Authf("account is disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, apperr.Authf("invalid email or password")
	}

	token, err := auth.GenerateToken(s.Secret, s.TokenTTL, u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	_ = s.Users.TouchLastLogin(u.ID)
	return token, u, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(token string) (*domain.User, error) {
	claims, err := auth.ValidateToken(s.Secret, token)
	if err != nil {
		return nil, apperr.Authf("invalid or expired token")
	}
	u, err := s.Users.ByID(claims.UserID)
	if err != nil {
		return nil, apperr.Authf("invalid or expired token")
	}
	if !u.Active {
		return nil, apperr.Authf("account is disabled")
	}
	return u, nil
}
