package auth

import (
	"errors"
	"testing"

	"collegeerp/internal/entity"
	"collegeerp/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeDirectory struct {
	principals map[string]*entity.Principal
	err        error
}

func (d *fakeDirectory) FindByIdentifier(email string) (*entity.Principal, error) {
	if d.err != nil {
		return nil, d.err
	}
	p, ok := d.principals[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return string(h)
}

func newTestResolver(dir Directory) *Resolver {
	codec := NewTokenCodec(testSecret, SessionTTL)
	return NewResolver(dir, codec, zap.NewNop())
}

func TestResolveSuccess(t *testing.T) {
	dir := &fakeDirectory{principals: map[string]*entity.Principal{
		"admin@collegeerp.com": {
			Kind: entity.KindAdmin, ID: 1,
			Email:        "admin@collegeerp.com",
			PasswordHash: hash(t, "admin123"),
		},
	}}
	r := newTestResolver(dir)

	p, token, err := r.Resolve("admin@collegeerp.com", "admin123")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.Kind != entity.KindAdmin || p.ID != 1 {
		t.Errorf("Expected admin id 1, got %+v", p)
	}

	claims, err := r.codec.Verify(token)
	if err != nil {
		t.Fatalf("Issued token did not verify: %v", err)
	}
	if claims.AccountID != 1 || claims.Kind != entity.KindAdmin {
		t.Errorf("Expected claims {1 admin}, got %+v", claims)
	}
}

func TestResolveCaseFoldsIdentifier(t *testing.T) {
	dir := &fakeDirectory{principals: map[string]*entity.Principal{
		"admin@collegeerp.com": {
			Kind: entity.KindAdmin, ID: 1,
			Email:        "admin@collegeerp.com",
			PasswordHash: hash(t, "admin123"),
		},
	}}
	r := newTestResolver(dir)

	if _, _, err := r.Resolve("  Admin@CollegeERP.com ", "admin123"); err != nil {
		t.Errorf("Expected case-folded lookup to succeed, got %v", err)
	}
}

func TestResolveUniformFailure(t *testing.T) {
	dir := &fakeDirectory{principals: map[string]*entity.Principal{
		"admin@collegeerp.com": {
			Kind: entity.KindAdmin, ID: 1,
			Email:        "admin@collegeerp.com",
			PasswordHash: hash(t, "admin123"),
		},
	}}
	r := newTestResolver(dir)

	_, _, unknownErr := r.Resolve("nobody@x.com", "whatever")
	_, _, wrongErr := r.Resolve("admin@collegeerp.com", "wrongpass")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown identifier, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong secret, got %v", wrongErr)
	}
	if unknownErr != wrongErr {
		t.Error("Unknown identifier and wrong secret must yield the identical error")
	}
}

func TestResolveValidation(t *testing.T) {
	r := newTestResolver(&fakeDirectory{})

	var ve *ValidationError
	if _, _, err := r.Resolve("", "secret"); !errors.As(err, &ve) || ve.Field != "email" {
		t.Errorf("Expected email validation error, got %v", err)
	}
	if _, _, err := r.Resolve("someone@x.com", ""); !errors.As(err, &ve) || ve.Field != "password" {
		t.Errorf("Expected password validation error, got %v", err)
	}
}

func TestResolveStoreUnavailable(t *testing.T) {
	r := newTestResolver(&fakeDirectory{err: errors.New("connection refused")})

	_, _, err := r.Resolve("admin@collegeerp.com", "admin123")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("Expected ErrServiceUnavailable, got %v", err)
	}
}
