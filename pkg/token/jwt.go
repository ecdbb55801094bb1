package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
)

type Engine interface {
	// Generate creates a signed token string carrying obj as its payload.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify checks the signature and expiration, then decodes the payload
	// into obj. The obj parameter must be a pointer.
	Verify(token string, obj any) error
}

type claims struct {
	jwt.RegisteredClaims
	Data any `json:"data"`
}

type jwtEngine struct {
	secret string
}

func NewEngine(secret string) Engine {
	return &jwtEngine{secret: secret}
}

func (e *jwtEngine) Generate(expiration time.Duration, obj any) (string, error) {
	now := time.Now()
	c := claims{
		Data: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(e.secret))
}

func (e *jwtEngine) Verify(token string, obj any) error {
	var c claims
	_, err := jwt.ParseWithClaims(
		token, &c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(e.secret), nil
		},
	)
	if err != nil {
		return err
	}

	return mapstructure.Decode(c.Data, obj)
}
