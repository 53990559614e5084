package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies bearer tokens at the API boundary. Tokens are issued
// by the identity provider in front of this service; GenerateAccessToken
// exists for tests and local development.
type Service interface {
	GenerateAccessToken(userID string, groups []string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, groups []string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"groups":  groups,
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// Identity is the authenticated caller extracted from the token claims.
type Identity struct {
	UserID string
	Groups []string
}

// IsAdmin reports membership in the admin group.
func (i Identity) IsAdmin() bool {
	for _, g := range i.Groups {
		if g == "admin" {
			return true
		}
	}
	return false
}

// IdentityFromContext extracts the caller from the verified token in
// the request context.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	var groups []string
	switch raw := claims["groups"].(type) {
	case []string:
		groups = raw
	case []interface{}:
		for _, g := range raw {
			if s, ok := g.(string); ok {
				groups = append(groups, s)
			}
		}
	}

	return Identity{UserID: userID, Groups: groups}, nil
}
