package auth

import (
	"time"

	"collegeerp/internal/entity"

	"github.com/gorilla/securecookie"
)

// CookieName is the credential carrier on every protected request.
const CookieName = "token"

// SessionTTL bounds how long an issued token stays valid. There is no
// revocation: a deleted account keeps a working token until expiry.
const SessionTTL = 7 * 24 * time.Hour

// Claims is what a session token carries. No server-side state backs it;
// the signature and embedded timestamp are the whole session.
type Claims struct {
	AccountID int
	Kind      entity.Kind
}

// TokenCodec signs and verifies session tokens with a single symmetric
// key shared by all three account kinds.
type TokenCodec struct {
	sc *securecookie.SecureCookie
}

// NewTokenCodec builds a codec from the configured signing secret. With
// an empty secret a random key is generated, which invalidates all
// outstanding tokens on restart.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}

	sc := securecookie.New(secret, nil)
	sc.MaxAge(int(ttl / time.Second))

	return &TokenCodec{sc: sc}
}

func (c *TokenCodec) Issue(claims Claims) (string, error) {
	return c.sc.Encode(CookieName, claims)
}

// Verify checks the signature and the embedded issue time. A tampered
// value and an expired one both come back as an error.
func (c *TokenCodec) Verify(value string) (Claims, error) {
	var claims Claims
	err := c.sc.Decode(CookieName, value, &claims)
	return claims, err
}
