package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cocktail-bar-api/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the session payload. Name and email are copied at issue time and
// go stale if the account changes before expiry.
type Claims struct {
	UserID     uint            `json:"id"`
	Role       models.UserRole `json:"role"`
	Identifier string          `json:"identifier,omitempty"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func ClaimsFor(user models.User) Claims {
	return Claims{
		UserID:     user.ID,
		Role:       user.Role,
		Identifier: user.Handle(),
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.EmailAddress(),
	}
}

// TokenIssuer signs and verifies HS256 session tokens. Tokens are not stored;
// there is no revocation.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of the issuer that reads time from now.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	return &TokenIssuer{secret: t.secret, now: now}
}

// Issue signs claims with iat = now and exp = now + ttl.
func (t *TokenIssuer) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	now := t.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", claims.UserID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Any failure is reported as
// ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
