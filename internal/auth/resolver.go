package auth

import (
	"errors"
	"strings"

	"collegeerp/internal/entity"
	"collegeerp/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// secret. Callers must not learn which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrServiceUnavailable means an account store could not be queried;
	// retrying can help, re-typing the password cannot.
	ErrServiceUnavailable = errors.New("account store unavailable")
)

// ValidationError names the missing login field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " required"
}

// Directory looks an identifier up across the account stores in their
// fixed priority order.
type Directory interface {
	FindByIdentifier(email string) (*entity.Principal, error)
}

// Resolver turns an identifier/secret pair into a principal and a signed
// session token.
type Resolver struct {
	directory Directory
	codec     *TokenCodec
	logger    *zap.Logger
}

func NewResolver(directory Directory, codec *TokenCodec, logger *zap.Logger) *Resolver {
	return &Resolver{directory: directory, codec: codec, logger: logger}
}

// Resolve validates the pair and, on success, returns the principal plus
// an opaque token encoding {id, kind}.
func (r *Resolver) Resolve(email, password string) (*entity.Principal, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", &ValidationError{Field: "email"}
	}
	if password == "" {
		return nil, "", &ValidationError{Field: "password"}
	}

	p, err := r.directory.FindByIdentifier(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		r.logger.Error("account lookup failed", zap.String("email", email), zap.Error(err))
		return nil, "", ErrServiceUnavailable
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := r.codec.Issue(Claims{AccountID: p.ID, Kind: p.Kind})
	if err != nil {
		r.logger.Error("token encode failed", zap.Error(err))
		return nil, "", err
	}

	return p, token, nil
}

// HashSecret hashes a password for storage with the same cost login
// verifies against.
func HashSecret(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
