package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims models.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(role models.UserRole, expiresIn time.Duration) models.JWTClaims {
	return models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		Email:  "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "placement-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func TestTokenServiceValidateToken(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret", Issuer: "placement-auth"}, nil)

	claims, err := svc.ValidateToken(signToken(t, jwt.SigningMethodHS256, "secret", validClaims(models.RoleStudent, time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestTokenServiceRejectsBadTokens(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret", Issuer: "placement-auth"}, nil)

	cases := map[string]string{
		"wrong secret":  signToken(t, jwt.SigningMethodHS256, "other", validClaims(models.RoleStudent, time.Hour)),
		"wrong method":  signToken(t, jwt.SigningMethodHS512, "secret", validClaims(models.RoleStudent, time.Hour)),
		"expired":       signToken(t, jwt.SigningMethodHS256, "secret", validClaims(models.RoleStudent, -time.Minute)),
		"unknown role":  signToken(t, jwt.SigningMethodHS256, "secret", validClaims(models.UserRole("ADMIN"), time.Hour)),
		"garbage input": "not-a-token",
	}
	wrongIssuer := validClaims(models.RoleTrainer, time.Hour)
	wrongIssuer.Issuer = "someone-else"
	cases["wrong issuer"] = signToken(t, jwt.SigningMethodHS256, "secret", wrongIssuer)

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}
