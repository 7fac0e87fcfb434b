package utils // package utils provides helper functions for password hashing and session tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken for any token that is
// malformed, carries a bad signature, uses an unexpected algorithm, is
// expired, or has no usable subject claim. Callers treat all of these the
// same way: the session is not valid.
var ErrInvalidToken = errors.New("invalid or expired token")

// AccessToken represents a signed JWT session token along with its expiry.
// Sessions are stateless: validity is a pure function of the signature and
// the exp claim, so nothing is stored server-side and revocation is not
// supported. Logout is a client-side delete of the local copy.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID and a TTL in minutes, and returns the signed
// token together with its expiration time. Claims are the standard set:
// subject (sub), expiration (exp) and issued at (iat).
func NewAccessToken(secret, userID string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token string
// and returns the user ID from the subject claim. The jwt library checks
// the exp claim against the current time during Parse, so an expired token
// never reaches the claim extraction below.
func ParseAccessToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC; an attacker must not
		// be able to downgrade the algorithm.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
