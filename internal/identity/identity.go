// Package identity creates accounts and verifies credentials.
//
// Passwords are stored and compared in plaintext. This mirrors the system
// being replaced and is a known limitation; there is no hashing, lockout or
// rate limiting.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/model"
	"github.com/roach88/fittrack/internal/store"
)

// Minimum lengths, counted in characters.
const (
	MinUsernameLength = 5
	MinPasswordLength = 7
)

var (
	// ErrInvalidUsername is returned when a username is shorter than MinUsernameLength.
	ErrInvalidUsername = errors.New("username must be at least 5 characters long")
	// ErrInvalidPassword is returned when a password fails the complexity rules.
	ErrInvalidPassword = errors.New("password must be at least 7 characters long, contain at least 1 uppercase letter, and 1 special character")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Service manages accounts.
type Service struct {
	store *store.Store
	log   *zap.Logger
}

// NewService constructs a Service.
func NewService(st *store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, log: log.Named("identity")}
}

// ValidateUsername checks the username length rule.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(model.NormalizeName(username)) < MinUsernameLength {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword checks the password complexity rules: minimum length,
// an uppercase letter, and a character from model.SpecialCharacters.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrInvalidPassword
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return ErrInvalidPassword
	}
	if !strings.ContainsAny(password, model.SpecialCharacters) {
		return ErrInvalidPassword
	}
	return nil
}

// CreateAccount validates and stores a new account. The username rule is
// checked before the password rule.
func (s *Service) CreateAccount(ctx context.Context, username, password string) error {
	username = model.NormalizeName(username)
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	_, err := s.store.Insert(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)", username, password)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return fmt.Errorf("create account %q: %w", username, ErrDuplicateUsername)
		}
		return fmt.Errorf("create account: %w", err)
	}

	s.log.Info("account created", zap.String("username", username))
	return nil
}

// Login reports whether (username, password) matches a stored account exactly.
// A mismatch is not an error; err is set only when the store fails.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	username = model.NormalizeName(username)
	n, err := s.store.Count(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ? AND password = ?", username, password)
	if err != nil {
		return false, fmt.Errorf("login: %w", err)
	}
	if n == 0 {
		s.log.Debug("login rejected", zap.String("username", username))
		return false, nil
	}
	return true, nil
}
