// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var timeNow = time.Now

// Token 用途，避免驗證信的 token 被拿去當 access token
const (
	PurposeAccess      = "access"
	PurposeVerifyEmail = "verify_email"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims 定義 JWT 負載內容
type Claims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Tokens 以 HS256 簽發並驗證 JWT
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not set")
	}
	return &Tokens{secret: []byte(secret)}, nil
}

// Issue 依據帳號資訊、用途與 TTL 產生 JWT
func (t *Tokens) Issue(subject, email, purpose string, ttl time.Duration) (string, error) {
	now := timeNow()
	claims := Claims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify 驗證簽章、期限與用途，任何失敗都回傳 ErrInvalidToken
func (t *Tokens) Verify(tokenString, purpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: purpose %q", ErrInvalidToken, claims.Purpose)
	}
	return claims, nil
}
