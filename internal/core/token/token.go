// Package token issues and parses the signed bearer tokens that carry a
// user's identity between services. Tokens are self-contained snapshots:
// claims reflect the account at issuance time and are never refreshed.
package token

import (
	"encoding/base64"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Claims are the fields embedded in every issued token. Subject is the
// account email; UserID and Roles are what downstream services authorize on.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64    `json:"userId"`
	LabID  *int64   `json:"labId,omitempty"`
	Roles  []string `json:"roles"`
}

// Codec signs and verifies tokens with a symmetric key loaded once at
// process start. It is safe for concurrent use; nothing is mutated after
// construction.
type Codec struct {
	key []byte
	ttl time.Duration
}

// NewCodec decodes the base64-encoded signing secret and returns a Codec.
// A non-positive ttl falls back to 24 hours.
func NewCodec(base64Secret string, ttl time.Duration) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("token: decode signing secret: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("token: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{key: key, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given identity. Roles are sorted before
// embedding so identical inputs always produce byte-identical payloads.
func (c *Codec) Issue(subject string, userID int64, labID *int64, roles []string, now time.Time) (string, error) {
	sorted := make([]string, len(roles))
	copy(sorted, roles)
	sort.Strings(sorted)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: userID,
		LabID:  labID,
		Roles:  sorted,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and recovers the claims. Expiry is NOT
// enforced here; callers check it separately via IsExpired so that expired
// and malformed tokens can be told apart internally.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !t.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// IsExpired reports whether now is at or past the recorded expiry.
func IsExpired(claims *Claims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// Validate reports whether the token parses, carries the expected subject,
// and has not expired.
func (c *Codec) Validate(tokenString, expectedSubject string, now time.Time) bool {
	claims, err := c.Parse(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject && !IsExpired(claims, now)
}
