// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

// Package normalize provides the canonical text transforms used for
// uniqueness comparison across the platform.
//
// # Usage
//
// Role names are uniquely keyed by their normalized form. Every comparison,
// lookup, and persistence of a role name goes through [RoleName] — there is
// no ad-hoc string comparison of role labels anywhere else in the codebase.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// upper is a language-neutral uppercaser. Unlike strings.ToUpper it applies
// full Unicode case mapping (e.g. ß → SS), so visually identical names
// collapse to the same key regardless of how they were typed.
var upper = cases.Upper(language.Und)

// RoleName converts a raw role label into its canonical uniqueness key.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC (composes combining sequences: e + ́ → é).
// 2. Trims leading and trailing Unicode whitespace.
// 3. Uppercases with full Unicode case mapping.
//
// The transform is a pure function: equal inputs always produce equal
// outputs, and the result is stable under re-application.
func RoleName(raw string) string {
	composed := norm.NFC.String(raw)
	trimmed := strings.TrimSpace(composed)
	return upper.String(trimmed)
}

// IsBlank reports whether the raw name normalizes to the empty string.
// A blank normalized name is never a valid uniqueness key.
func IsBlank(raw string) bool {
	return RoleName(raw) == ""
}
