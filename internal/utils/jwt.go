package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel errors for token verification failures
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/iliyamo/artist-management/internal/model" // closed role set carried in access claims
)

// ErrInvalidToken is returned whenever a token fails verification:
// malformed, expired, signed with the wrong key or carrying claims that
// do not match the expected shape. Callers treat every variant the same
// way (the session is not valid), so a single sentinel is enough.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Access tokens are short-lived and travel in
// the http-only `accessToken` cookie.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long-lived signed token used solely to mint
// new access tokens. It travels in the http-only `refreshToken` cookie
// and encodes only the user id: the role is re-read from storage at
// refresh time so role changes take effect.
type RefreshToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // UTC expiration time
}

// SessionClaims is the verified content of an access token: the identity
// the session belongs to and the role snapshot taken at issuance.
type SessionClaims struct {
	UserID uint64
	Role   model.Role
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the user's role, and a TTL in minutes.
// The JWT includes standard claims: subject (sub), role, expiration
// (exp) and issued at (iat).
func NewAccessToken(secret string, userID uint64, role model.Role, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken builds and signs an HS256 JWT carrying only the user
// id. Refresh tokens live longer than access tokens; the ttlDays
// parameter controls how many days the token stays valid.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (RefreshToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of an access token
// string and returns its claims. It is a pure function over the token
// string: no transport or storage concerns leak in here.
func ParseAccessToken(secret, raw string) (SessionClaims, error) {
	claims, err := parseHS256(secret, raw)
	if err != nil {
		return SessionClaims{}, err
	}
	uid, ok := subjectID(claims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	roleStr, _ := claims["role"].(string)
	role, ok := model.ParseRole(roleStr)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	return SessionClaims{UserID: uid, Role: role}, nil
}

// ParseRefreshToken verifies a refresh token string and returns the user
// id it was issued for.
func ParseRefreshToken(secret, raw string) (uint64, error) {
	claims, err := parseHS256(secret, raw)
	if err != nil {
		return 0, err
	}
	uid, ok := subjectID(claims)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uid, nil
}

// parseHS256 runs the shared verification path: HMAC signing method,
// valid signature, unexpired. The jwt library enforces exp itself.
func parseHS256(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// subjectID extracts the sub claim. JWT numeric values decode as
// float64; tolerate string-encoded ids as well.
func subjectID(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		if v == "" {
			return 0, false
		}
		var n uint64
		for _, ch := range v {
			if ch < '0' || ch > '9' {
				return 0, false
			}
			n = n*10 + uint64(ch-'0')
		}
		return n, true
	}
	return 0, false
}
