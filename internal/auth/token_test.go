package auth

import (
	"testing"
	"time"

	"collegeerp/internal/entity"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, SessionTTL)

	issued := Claims{AccountID: 42, Kind: entity.KindTeacher}
	token, err := codec.Issue(issued)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got.AccountID != 42 || got.Kind != entity.KindTeacher {
		t.Errorf("Expected {42 teacher}, got %+v", got)
	}
}

func TestTokenExpired(t *testing.T) {
	// A negative TTL makes every token already expired on decode.
	codec := NewTokenCodec(testSecret, -time.Second)

	token, err := codec.Issue(Claims{AccountID: 1, Kind: entity.KindStudent})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := codec.Verify(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestTokenTampered(t *testing.T) {
	codec := NewTokenCodec(testSecret, SessionTTL)

	token, err := codec.Issue(Claims{AccountID: 7, Kind: entity.KindAdmin})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tampered := []byte(token)
	tampered[len(tampered)/2] ^= 0x01
	if _, err := codec.Verify(string(tampered)); err == nil {
		t.Error("Expected tampered token to be rejected")
	}

	if _, err := codec.Verify("not-a-token"); err == nil {
		t.Error("Expected garbage token to be rejected")
	}
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenCodec(testSecret, SessionTTL)
	verifier := NewTokenCodec([]byte("another-secret-another-secret-xx"), SessionTTL)

	token, err := issuer.Issue(Claims{AccountID: 7, Kind: entity.KindAdmin})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Error("Expected token signed with a different key to be rejected")
	}
}
