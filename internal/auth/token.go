package auth

import (
	"strings"
	"time"

	"ticketbari-api/internal/model"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller extracted from a verified credential.
type Identity struct {
	Email string
	Role  model.Role
}

// TokenManager signs and verifies bearer credentials with a shared HMAC
// secret. Verification is purely functional; the role claim reflects the
// directory state at signing time, not at request time.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *TokenManager) Issue(email string, role model.Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(m.ttl).Unix(),
		"iat":   time.Now().Unix(),
	})

	return token.SignedString(m.secret)
}

// Verify parses an Authorization header value of the form "Bearer <token>".
// A missing or malformed header fails with ErrMissingToken; a token that does
// not verify or has expired fails with ErrInvalidToken.
func (m *TokenManager) Verify(authorizationHeader string) (Identity, error) {
	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return Identity{}, apperrors.ErrMissingToken
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperrors.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if email == "" || !model.Role(role).IsValid() {
		return Identity{}, apperrors.ErrInvalidToken
	}

	return Identity{Email: email, Role: model.Role(role)}, nil
}
