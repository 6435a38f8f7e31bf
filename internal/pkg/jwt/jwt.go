package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidClaims = errors.New("invalid token claims")

type Service interface {
	GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error)
	// Parse verifies a raw token and returns its principal.
	Parse(tokenString string) (user.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	if principal.UserID == "" || principal.TenantID == "" {
		return "", 0, fmt.Errorf("%w: user_id and tenant_id are required", ErrInvalidClaims)
	}
	if _, err := user.ParseRole(string(principal.Role)); err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":   principal.UserID,
		"tenant_id": principal.TenantID,
		"role":      string(principal.Role),
		"type":      "access",
		"exp":       expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) Parse(tokenString string) (user.Principal, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return user.Principal{}, err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return user.Principal{}, err
	}
	return PrincipalFromClaims(claims)
}

// PrincipalFromClaims reads an access token's claims as produced by
// jwtauth.FromContext.
func PrincipalFromClaims(claims map[string]interface{}) (user.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.Principal{}, fmt.Errorf("%w: not an access token", ErrInvalidClaims)
	}

	userID, _ := claims["user_id"].(string)
	tenantID, _ := claims["tenant_id"].(string)
	if userID == "" || tenantID == "" {
		return user.Principal{}, fmt.Errorf("%w: missing user_id or tenant_id", ErrInvalidClaims)
	}

	roleStr, _ := claims["role"].(string)
	role, err := user.ParseRole(roleStr)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}

	return user.Principal{UserID: userID, TenantID: tenantID, Role: role}, nil
}
