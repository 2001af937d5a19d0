// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquangduy/medicore/internal/platform/sec"
)

// newTestTokenService generates a throwaway RSA key pair, writes it to PEM
// files under t.TempDir(), and constructs a TokenService from those paths.
func newTestTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "jwt_private.pem")
	publicPath := filepath.Join(dir, "jwt_public.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	tokenService, err := sec.NewTokenService(privatePath, publicPath, issuer)
	require.NoError(t, err)

	return tokenService
}

/*
TestTokenService_RoundTrip signs a token and verifies it with the paired key.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	tokenService := newTestTokenService(t, "medicore.health")

	scopes := []string{"patient:read", "patient:write"}
	signed, err := tokenService.GenerateAccessToken("duy@medicore.health", scopes, 5*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokenService.VerifyToken(signed)
	require.NoError(t, err)

	assert.Equal(t, "duy@medicore.health", claims.Subject)
	assert.Equal(t, "medicore.health", claims.Issuer)
	assert.Equal(t, scopes, claims.Scopes)
	assert.True(t, claims.HasScope("patient:read"))
	assert.False(t, claims.HasScope("role:manage"))

	// exp - iat equals the requested time to live
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 5*time.Minute, lifetime)
}

/*
TestTokenService_ScopeSnapshot verifies the embedded scopes do not alias the
caller's slice.
*/
func TestTokenService_ScopeSnapshot(t *testing.T) {
	tokenService := newTestTokenService(t, "medicore.health")

	scopes := []string{"patient:read"}
	signed, err := tokenService.GenerateAccessToken("duy@medicore.health", scopes, 5*time.Minute)
	require.NoError(t, err)

	// Mutate the caller's slice after issuance
	scopes[0] = "role:manage"

	claims, err := tokenService.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, []string{"patient:read"}, claims.Scopes)
}

/*
TestTokenService_Expired verifies that an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	tokenService := newTestTokenService(t, "medicore.health")

	signed, err := tokenService.GenerateAccessToken("duy@medicore.health", nil, -1*time.Minute)
	require.NoError(t, err)

	claims, err := tokenService.VerifyToken(signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestTokenService_WrongKey verifies that a token signed by a different key
pair fails verification.
*/
func TestTokenService_WrongKey(t *testing.T) {
	signer := newTestTokenService(t, "medicore.health")
	verifier := newTestTokenService(t, "medicore.health")

	signed, err := signer.GenerateAccessToken("duy@medicore.health", nil, 5*time.Minute)
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestTokenService_Garbage verifies that malformed strings are rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	tokenService := newTestTokenService(t, "medicore.health")

	for _, input := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		claims, err := tokenService.VerifyToken(input)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}
