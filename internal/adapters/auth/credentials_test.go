package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"hotel_booking/internal/adapters/auth"
	"hotel_booking/internal/domain"
)

func newCreds(t *testing.T, ttl time.Duration) *auth.Credentials {
	t.Helper()
	c, err := auth.New("test-secret", ttl)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return c.WithCost(bcrypt.MinCost)
}

func TestPasswordHash(t *testing.T) {
	c := newCreds(t, time.Hour)
	h, err := c.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h == "s3cret-pass" || !c.CheckPassword(h, "s3cret-pass") {
		t.Fatalf("hash does not verify")
	}
	if c.CheckPassword(h, "other") {
		t.Fatalf("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	c := newCreds(t, time.Hour)
	tok, err := c.IssueToken(domain.User{ID: 7, Email: "a@b.c", Roles: []string{domain.RoleUser}})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	p, err := c.ParseToken(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.UserID != 7 || p.Email != "a@b.c" || len(p.Roles) != 1 || p.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestTokenRejected(t *testing.T) {
	c := newCreds(t, time.Hour)

	other, _ := auth.New("other-secret", time.Hour)
	foreign, _ := other.IssueToken(domain.User{ID: 1})
	if _, err := c.ParseToken(foreign); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("foreign signature: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1})
	raw, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := c.ParseToken(raw); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("alg none: %v", err)
	}

	if _, err := c.ParseToken("not.a.token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("garbage: %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	c := newCreds(t, time.Millisecond)
	tok, _ := c.IssueToken(domain.User{ID: 1})
	time.Sleep(1100 * time.Millisecond)
	if _, err := c.ParseToken(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := auth.New("", time.Hour); err == nil {
		t.Fatalf("expected error")
	}
}
