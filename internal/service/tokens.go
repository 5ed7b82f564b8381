package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens signs the opaque session scope id handed to clients.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) TTL() time.Duration { return t.ttl }

func (t *Tokens) Issue(sid string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"typ": "session",
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	})
	return tok.SignedString(t.secret)
}

// Parse returns the session id carried by token.
func (t *Tokens) Parse(token string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims["typ"] != "session" {
		return "", errors.New("invalid token type")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("invalid sid")
	}
	return sid, nil
}
