package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vovakirdan/quiz-arcade/internal/config"
)

func newTokens(secret string) *Tokens {
	return NewTokens(config.AuthConfig{Secret: secret, Cookie: "sess", TokenTTL: time.Hour})
}

func TestIssueVerify(t *testing.T) {
	tok := newTokens("s3cret")
	token, err := tok.Issue("user-1")
	if err != nil {
		t.Fatal(err)
	}
	id, err := tok.Verify(token)
	if err != nil || id != "user-1" {
		t.Fatalf("Verify = %q, %v", id, err)
	}
}

func TestVerifyRejects(t *testing.T) {
	tok := newTokens("s3cret")
	good, _ := tok.Issue("user-1")
	parts := strings.Split(good, ".")
	other, _ := newTokens("other").Issue("user-1")
	forged, _ := tok.Issue("user-2")
	forgedParts := strings.Split(forged, ".")

	claims := jwt.RegisteredClaims{Subject: "user-1"}
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("s3cret"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", parts[0] + "." + parts[1]},
		{"empty signature", parts[0] + "." + parts[1] + "."},
		{"wrong secret", other},
		{"swapped claims", parts[0] + "." + forgedParts[1] + "." + parts[2]},
		{"garbage", "abc.def.ghi"},
		{"other algorithm", hs512},
		{"unsigned", none},
		{"no subject", noSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tok.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestExpiry(t *testing.T) {
	tok := newTokens("s3cret")
	start := time.Unix(1_700_000_000, 0)
	tok.now = func() time.Time { return start }
	token, _ := tok.Issue("user-1")

	tok.now = func() time.Time { return start.Add(59 * time.Minute) }
	if _, err := tok.Verify(token); err != nil {
		t.Errorf("before expiry: %v", err)
	}
	tok.now = func() time.Time { return start.Add(time.Hour) }
	if _, err := tok.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("at expiry: %v, want ErrExpiredToken", err)
	}
}

func TestNoSecret(t *testing.T) {
	tok := newTokens("")
	if _, err := tok.Issue("u"); !errors.Is(err, ErrNoSecret) {
		t.Errorf("Issue = %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer whatever")
	if _, ok := tok.Authenticate(r); ok {
		t.Error("authenticated without a secret")
	}
}

func TestAuthenticate(t *testing.T) {
	tok := newTokens("s3cret")
	token, _ := tok.Issue("user-1")

	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer", "Bearer " + token, "", "user-1"},
		{"lowercase scheme", "bearer " + token, "", "user-1"},
		{"cookie", "", token, "user-1"},
		{"basic scheme", "Basic " + token, "", ""},
		{"bad bearer ignores cookie", "Bearer nope", token, ""},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "sess", Value: tt.cookie})
			}
			id, ok := tok.Authenticate(r)
			if id != tt.want || ok != (tt.want != "") {
				t.Errorf("Authenticate = %q %v, want %q", id, ok, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	a := AuthenticatorFunc(func(r *http.Request) (string, bool) {
		id := r.Header.Get("X-User")
		return id, id != ""
	})
	var got string
	var seen bool
	h := Middleware(a, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, seen = UserFrom(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User", "alice")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if !seen || got != "alice" {
		t.Errorf("identity = %q %v, want alice", got, seen)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen {
		t.Errorf("anonymous request got identity %q", got)
	}
}

func TestSSHUser(t *testing.T) {
	if got := SSHUser("bob"); got != "ssh:bob" {
		t.Errorf("SSHUser = %q", got)
	}
}
