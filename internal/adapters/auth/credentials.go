// Package auth hashes passwords with bcrypt and issues HS256 JWTs.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"hotel_booking/internal/domain"
)

type Credentials struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

type claims struct {
	UserID int64    `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func New(secret string, ttl time.Duration) (*Credentials, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Credentials{secret: []byte(secret), ttl: ttl, cost: bcrypt.DefaultCost, now: time.Now}, nil
}

// WithCost lowers the bcrypt cost; tests use bcrypt.MinCost.
func (c *Credentials) WithCost(cost int) *Credentials {
	c.cost = cost
	return c
}

func (c *Credentials) HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (c *Credentials) CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func (c *Credentials) IssueToken(u domain.User) (string, error) {
	now := c.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: u.ID,
		Email:  u.Email,
		Roles:  u.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return tok.SignedString(c.secret)
}

func (c *Credentials) ParseToken(raw string) (domain.Principal, error) {
	var cl claims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	_, err := parser.ParseWithClaims(raw, &cl, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return domain.Principal{}, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
		}
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if cl.UserID == 0 {
		return domain.Principal{}, fmt.Errorf("%w: token has no user", domain.ErrUnauthorized)
	}
	return domain.Principal{UserID: cl.UserID, Email: cl.Email, Roles: cl.Roles}, nil
}
