// Package auth implements the credential verifier: it validates a request's
// Authorization header against configured credentials and signs the tokens
// used for sessions and the stored admin-password representation. Every
// failure mode yields false; nothing here panics or returns partial results.
package auth

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of a login session token.
const SessionTTL = 7 * 24 * time.Hour

// VerifyBasic checks an Authorization header in HTTP Basic mode against the
// configured username/password pair.
func VerifyBasic(header, username, password string) bool {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	user, pass, found := strings.Cut(string(decoded), ":")
	if !found {
		return false
	}
	return user == username && pass == password
}

// VerifyBearer checks an Authorization header in Bearer mode: the token must
// be an HMAC-signed JWT verifiable with secret and, when it carries an exp
// claim, not expired.
func VerifyBearer(header, secret string) bool {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || secret == "" {
		return false
	}
	return verify(token, secret)
}

// SignSession issues a session token carrying the username and an expiry
// claim, signed with the configured secret.
func SignSession(username, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SignPassword produces the stored admin-password representation: a token
// carrying the username, signed with the plaintext password as key. The
// plaintext itself is never persisted.
func SignPassword(username, password string) (string, error) {
	claims := jwt.MapClaims{"username": username}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(password))
}

// VerifyPassword checks a stored password token against a supplied plaintext
// password by verifying the token's signature with it.
func VerifyPassword(token, password string) bool {
	if token == "" || password == "" {
		return false
	}
	return verify(token, password)
}

func verify(token, key string) bool {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(key), nil
	})
	return err == nil && parsed.Valid
}
