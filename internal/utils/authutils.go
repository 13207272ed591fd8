package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = time.Hour

var signingKey []byte

func InitTokenSigner(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("token signing secret cannot be empty")
	}
	signingKey = []byte(secret)
	return nil
}

type TokenData struct {
	UserID int64
	Exp    int64
}

// IssueToken signs a session token for the given user, expiring after TokenTTL.
func IssueToken(userID int64) (string, error) {
	if signingKey == nil {
		return "", errors.New("token signer not initialized")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	})
	return token.SignedString(signingKey)
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func ValidateToken(tokenString string) (*TokenData, error) {
	if signingKey == nil {
		return nil, errors.New("token signer not initialized")
	}

	clean := sanitizeToken(tokenString)
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(clean, claims, func(t *jwt.Token) (any, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	var exp int64
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Unix()
	}

	return &TokenData{
		UserID: userID,
		Exp:    exp,
	}, nil
}

func ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return ValidateToken(token)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
}
