package services

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/pbkdf2"

	"github.com/zetflix/zetflix-api/internal/constants"
)

const (
	pbkdf2Iterations = 1000
	pbkdf2KeyLength  = 64
	saltLength       = 16
)

// Auth issues and validates bearer tokens and handles password hashing.
type Auth struct {
	secret []byte
}

// NewAuth creates an Auth service signing tokens with the given secret.
func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// HashPassword derives a PBKDF2-SHA512 hash with a fresh random salt.
// Both values are returned hex-encoded.
func (a *Auth) HashPassword(password string) (hash, salt string, err error) {
	rawSalt := make([]byte, saltLength)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	salt = hex.EncodeToString(rawSalt)
	hash = derivePassword(password, salt)
	return hash, salt, nil
}

// VerifyPassword checks a password against the stored hash and salt using a
// constant-time comparison.
func (a *Auth) VerifyPassword(password, salt, hash string) bool {
	derived := derivePassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(hash)) == 1
}

func derivePassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// GenerateToken issues an HS256 bearer token for the user, valid for 24 hours.
func (a *Auth) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(constants.TokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies a bearer token and returns the user ID it carries.
func (a *Auth) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token claims")
	}

	return claims.Subject, nil
}
