// Package auth identifies the user behind a request. Identities are
// opaque external ids; the store maps them to user rows.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vovakirdan/quiz-arcade/internal/config"
)

var (
	ErrNoSecret     = errors.New("auth: signing secret not configured")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
)

// Authenticator resolves the external user id of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (string, bool)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(r *http.Request) (string, bool)

func (f AuthenticatorFunc) Authenticate(r *http.Request) (string, bool) { return f(r) }

// Tokens issues and verifies HS256 signed JWT bearer tokens. The subject
// claim carries the external user id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	cookie string
	now    func() time.Time
}

// NewTokens builds a token codec from the auth config. An empty secret
// yields a codec that issues nothing and authenticates nobody.
func NewTokens(cfg config.AuthConfig) *Tokens {
	return &Tokens{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		cookie: cfg.Cookie,
		now:    time.Now,
	}
}

// Issue signs a token for the external user id.
func (t *Tokens) Issue(userID string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSecret
	}
	if userID == "" {
		return "", fmt.Errorf("auth: issue: empty user id")
	}
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: issue: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the user id.
func (t *Tokens) Verify(token string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSecret
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrExpiredToken
	case err != nil:
		return "", ErrInvalidToken
	case claims.Subject == "":
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Authenticate reads a bearer token, falling back to the session cookie.
func (t *Tokens) Authenticate(r *http.Request) (string, bool) {
	token := ""
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, rest, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		token = strings.TrimSpace(rest)
	} else if t.cookie != "" {
		if c, err := r.Cookie(t.cookie); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return "", false
	}
	id, err := t.Verify(token)
	return id, err == nil
}

// CookieName is the session cookie the codec reads.
func (t *Tokens) CookieName() string {
	return t.cookie
}

type ctxKey struct{}

// WithUser returns a context carrying the external user id.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserFrom returns the external user id attached by Middleware.
func UserFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Middleware attaches the request's identity, if any, to its context.
// Anonymous requests pass through; handlers decide what they require.
func Middleware(a Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := a.Authenticate(r); ok {
			r = r.WithContext(WithUser(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// SSHUser is the external id for a player who connected over SSH.
func SSHUser(name string) string {
	return "ssh:" + name
}
