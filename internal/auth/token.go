package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

var (
	ErrTokenMissing   = errors.New("authentication token is missing")
	ErrTokenMalformed = errors.New("authentication token is malformed")
	ErrTokenExpired   = errors.New("authentication token has expired")
	ErrTokenSignature = errors.New("authentication token signature is invalid")
	ErrTokenInvalid   = errors.New("authentication token is invalid")
)

type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) Issue(user domain.User) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, expiresAt, nil
}

func (t *Tokens) Verify(tokenString string) (domain.Principal, error) {
	if tokenString == "" {
		return domain.Principal{}, ErrTokenMissing
	}

	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return domain.Principal{}, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Principal{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Principal{}, ErrTokenSignature
		default:
			return domain.Principal{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
		}
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 32)
	if err != nil || userID <= 0 {
		return domain.Principal{}, fmt.Errorf("%w: subject %q", ErrTokenInvalid, c.Subject)
	}

	return domain.Principal{
		UserID: int32(userID),
		Name:   c.Name,
		Email:  c.Email,
	}, nil
}
