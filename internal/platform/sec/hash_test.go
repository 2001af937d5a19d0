// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquangduy/medicore/internal/platform/sec"
)

/*
TestHashPassword verifies that hashing is salted and one-way.
*/
func TestHashPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	// bcrypt output, never the plain text
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotContains(t, hash, password)

	// Same input hashes to a different string (fresh salt per call)
	secondHash, err := sec.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, secondHash)
}

/*
TestCheckPasswordHash verifies the comparison accepts only the original password.
*/
func TestCheckPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("s3cret-passw0rd")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("s3cret-passw0rd", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
	assert.False(t, sec.CheckPasswordHash("s3cret-passw0rd", "not-a-bcrypt-hash"))
}
