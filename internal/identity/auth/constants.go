// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration an issued access token remains valid.
	// Deliberately short (300 seconds): there is no refresh flow, so a leaked
	// token ages out quickly. Tune here, never inline in issuance logic.
	AccessTokenTTL = 300 * time.Second

	// MinPasswordLength is the minimum plaintext length accepted by the
	// registration and rotation boundaries. Strength policy lives at this
	// boundary — the lifecycle core itself hashes whatever it is handed.
	MinPasswordLength = 8
)
