package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:   testJWTSecret,
		Audience: "authenticated",
	})
}

func signClaims(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t)
	userID := uuid.New()

	token, err := service.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	// Test token format is valid JWT (three parts separated by dots)
	parts := strings.Split(token, ".")
	assert.Equal(t, 3, len(parts), "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "authenticated", claims.Role)
}

func TestJWTService_ValidateToken_PlatformToken(t *testing.T) {
	service := setupTestJWTService(t)
	userID := uuid.New()

	// Shape of an access token minted by the auth platform
	token := signClaims(t, jwt.MapClaims{
		"sub":   userID.String(),
		"aud":   "authenticated",
		"role":  "authenticated",
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}, jwt.SigningMethodHS256, []byte(testJWTSecret))

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := setupTestJWTService(t)
	userID := uuid.New().String()
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "empty",
			token:   func(_ *testing.T) string { return "" },
			wantErr: "token string is empty",
		},
		{
			name:    "malformed",
			token:   func(_ *testing.T) string { return "not.a.valid.jwt.token" },
			wantErr: "malformed token",
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.MapClaims{"sub": userID, "aud": "authenticated", "exp": future},
					jwt.SigningMethodHS256, []byte("another-secret-that-is-long-enough"))
			},
			wantErr: "invalid token signature",
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.MapClaims{"sub": userID, "aud": "authenticated", "exp": time.Now().Add(-time.Minute).Unix()},
					jwt.SigningMethodHS256, []byte(testJWTSecret))
			},
			wantErr: "token expired",
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.MapClaims{"sub": userID, "aud": "authenticated"},
					jwt.SigningMethodHS256, []byte(testJWTSecret))
			},
			wantErr: "failed to parse token",
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.MapClaims{"sub": userID, "aud": "anon", "exp": future},
					jwt.SigningMethodHS256, []byte(testJWTSecret))
			},
			wantErr: "invalid token audience",
		},
		{
			name: "subject not a uuid",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.MapClaims{"sub": "user-123", "aud": "authenticated", "exp": future},
					jwt.SigningMethodHS256, []byte(testJWTSecret))
			},
			wantErr: "token subject is not a user id",
		},
		{
			name: "unsigned",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.MapClaims{"sub": userID, "aud": "authenticated", "exp": future},
					jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)
			},
			wantErr: "invalid token signature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_NoAudienceConfigured(t *testing.T) {
	service := NewJWTService(&config.JWTConfig{Secret: testJWTSecret})
	userID := uuid.New()

	token := signClaims(t, jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(time.Hour).Unix()},
		jwt.SigningMethodHS256, []byte(testJWTSecret))

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_Authenticate(t *testing.T) {
	service := setupTestJWTService(t)
	userID := uuid.New()
	token, err := service.GenerateToken(userID, time.Minute)
	require.NoError(t, err)

	got, err := service.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = service.Authenticate("garbage")
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}
