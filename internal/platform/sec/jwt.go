// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the token-provider interfaces the domains define.
//
// The signing key pair is loaded once at construction and is immutable
// afterwards. There is no ambient/global key lookup anywhere in the codebase:
// key rotation means constructing a new [TokenService] and restarting.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims represents the payload embedded inside a signed access token.
//
// # Claim Shape
//
// The claim set is part of Medicore's wire contract: every verifying service
// reads exactly these keys. The scope claim is spelled "scope" — a single
// spelling shared by issuer and verifiers (see constants.ClaimScope).
type AccessClaims struct {
	jwt.RegisteredClaims

	// Scopes is the capability set snapshotted from the caller's role at
	// issuance time. Later role mutation never changes an issued token.
	Scopes []string `json:"scope"`
}

// TokenService handles generation and verification of JWT tokens using RS256.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewTokenService creates a new TokenService.
// It reads RSA keys from the provided filesystem paths.
//
// A missing or malformed key is a fatal configuration error: it is returned
// once here, never retried, and the process should refuse to start.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
	}, nil
}

// GenerateAccessToken creates a new signed JWT for the given subject.
//
// # Parameters
//   - subject: The 'sub' claim — the account's email.
//   - scopes: The capability snapshot to embed. The slice is copied.
//   - timeToLive: The duration before the token expires.
func (service *TokenService) GenerateAccessToken(subject string, scopes []string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()

	// Snapshot copy: the caller's slice must not alias the token payload.
	scopeCopy := make([]string, len(scopes))
	copy(scopeCopy, scopes)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Scopes: scopeCopy,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// HasScope reports whether the claims grant the given capability string.
func (claims *AccessClaims) HasScope(scope string) bool {
	for _, granted := range claims.Scopes {
		if granted == scope {
			return true
		}
	}
	return false
}
