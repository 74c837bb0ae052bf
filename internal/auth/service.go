package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt input limit
)

type Session struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	users  port.UserRepository
	tokens *Tokens
	cost   int
}

func NewService(users port.UserRepository, tokens *Tokens, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		users:  users,
		tokens: tokens,
		cost:   bcryptCost,
	}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (int32, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	switch {
	case name == "":
		return 0, invalidUser("name is empty")
	case email == "":
		return 0, invalidUser("email is empty")
	case len(password) < minPasswordLength:
		return 0, invalidUser(fmt.Sprintf("password must have at least %d characters", minPasswordLength))
	case len(password) > maxPasswordLength:
		return 0, invalidUser(fmt.Sprintf("password must have at most %d bytes", maxPasswordLength))
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return 0, invalidUser("email is not valid")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	id, err := s.users.CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return 0, err
		}
		return 0, fmt.Errorf("users.CreateUser: %w", err)
	}

	return id, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("bcrypt.CompareHashAndPassword: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, fmt.Errorf("tokens.Issue: %w", err)
	}

	return Session{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidUser(reason string) error {
	return &domain.ValidationError{Kind: domain.ErrInvalidUser, Reason: reason}
}
