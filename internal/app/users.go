package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type UserService struct {
	store domain.Store
	creds domain.Credentials
}

func NewUserService(s domain.Store, c domain.Credentials) *UserService {
	return &UserService{store: s, creds: c}
}

func (s *UserService) RegistrationUser(ctx context.Context, form UserRegistrationForm) (UserInfo, error) {
	form.Email = normalizeEmail(form.Email)
	if err := validateRequest(form); err != nil {
		return UserInfo{}, err
	}
	hash, err := s.creds.HashPassword(form.Password)
	if err != nil {
		return UserInfo{}, err
	}

	u := domain.User{Email: form.Email, PasswordHash: hash, Roles: []string{domain.RoleUser}}
	err = s.store.Atomic(ctx, func(tx domain.Store) error {
		_, ferr := tx.FindUserByEmail(ctx, u.Email)
		found, err := exists(ferr)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("user %q: %w", u.Email, domain.ErrAlreadyExists)
		}
		return tx.SaveUser(ctx, &u)
	})
	if err != nil {
		return UserInfo{}, err
	}
	log.Info().Int64("user_id", u.ID).Msg("user registered")
	return toUserInfo(u), nil
}

// Login checks the password and issues a bearer token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if err := validateRequest(req); err != nil {
		return LoginResponse{}, err
	}
	u, err := s.store.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResponse{}, domain.ErrUnauthorized
		}
		return LoginResponse{}, err
	}
	if !s.creds.CheckPassword(u.PasswordHash, req.Password) {
		log.Warn().Int64("user_id", u.ID).Msg("login rejected")
		return LoginResponse{}, domain.ErrUnauthorized
	}
	tok, err := s.creds.IssueToken(u)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: tok}, nil
}

// Authenticate resolves a bearer token to the current state of its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	p, err := s.creds.ParseToken(token)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	u, err := s.store.GetUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, domain.ErrUnauthorized
		}
		return domain.Principal{}, err
	}
	return domain.Principal{UserID: u.ID, Email: u.Email, Roles: copyStrings(u.Roles)}, nil
}

func (s *UserService) Status(p domain.Principal) AuthStatus {
	return AuthStatus{
		Authenticated: true,
		Email:         p.Email,
		Roles:         copyStrings(p.Roles),
		Message:       fmt.Sprintf("You are logged in: true. Your role is [%s]", strings.Join(p.Roles, ", ")),
	}
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
