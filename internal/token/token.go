package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired is returned when a token carries an expiry claim that lies in
// the past. Callers surface it as a distinct "session expired" condition.
var ErrExpired = errors.New("session expired")

// ErrInvalid is returned for malformed tokens and bad signatures alike.
var ErrInvalid = errors.New("invalid token")

// Issue produces a signed HS256 token encoding the given claims. A ttl of
// zero or less omits the expiry claim entirely, which Verify treats as
// always valid.
func Issue(claims map[string]any, secret string, ttl time.Duration) (string, error) {
	mapClaims := jwt.MapClaims{}
	for key, value := range claims {
		mapClaims[key] = value
	}
	if ttl > 0 {
		mapClaims["exp"] = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and, when present, the expiry claim of the
// token. Expired tokens report ErrExpired; everything else that fails
// reports ErrInvalid.
func Verify(tokenString, secret string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}

// UserClaims identify a regular principal inside access and refresh tokens.
type UserClaims struct {
	UserID   uint
	SecretID string
}

// IssueUser signs a user token with the given secret and lifetime.
func IssueUser(claims UserClaims, secret string, ttl time.Duration) (string, error) {
	return Issue(map[string]any{
		"user_id":   claims.UserID,
		"secret_id": claims.SecretID,
	}, secret, ttl)
}

// VerifyUser validates a user token and extracts its identity claims.
func VerifyUser(tokenString, secret string) (UserClaims, error) {
	claims, err := Verify(tokenString, secret)
	if err != nil {
		return UserClaims{}, err
	}

	userID, ok := numericClaim(claims, "user_id")
	if !ok {
		return UserClaims{}, ErrInvalid
	}

	secretID, _ := claims["secret_id"].(string)

	return UserClaims{UserID: userID, SecretID: secretID}, nil
}

// SuperAdminClaims carry the statically configured credential triple the
// super-admin flow embeds into its token.
type SuperAdminClaims struct {
	Username      string
	Password      string
	SessionSecret string
}

// IssueSuperAdmin signs a super-admin token. These tokens carry no expiry.
func IssueSuperAdmin(claims SuperAdminClaims, secret string) (string, error) {
	return Issue(map[string]any{
		"username":       claims.Username,
		"password":       claims.Password,
		"session_secret": claims.SessionSecret,
	}, secret, 0)
}

// VerifySuperAdmin validates a super-admin token and extracts its claims.
func VerifySuperAdmin(tokenString, secret string) (SuperAdminClaims, error) {
	claims, err := Verify(tokenString, secret)
	if err != nil {
		return SuperAdminClaims{}, err
	}

	username, _ := claims["username"].(string)
	password, _ := claims["password"].(string)
	sessionSecret, _ := claims["session_secret"].(string)

	return SuperAdminClaims{
		Username:      username,
		Password:      password,
		SessionSecret: sessionSecret,
	}, nil
}

func numericClaim(claims jwt.MapClaims, key string) (uint, bool) {
	value, ok := claims[key]
	if !ok {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
