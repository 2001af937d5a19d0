// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tranquangduy/medicore/pkg/normalize"
)

/*
TestRoleName verifies trim and case-fold equivalence of role names.
*/
func TestRoleName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already_normalized", "DOCTOR", "DOCTOR"},
		{"lowercase", "doctor", "DOCTOR"},
		{"mixed_case", "Doctor", "DOCTOR"},
		{"leading_trailing_space", "  doctor  ", "DOCTOR"},
		{"tab_and_newline", "\tdoctor\n", "DOCTOR"},
		{"unicode_whitespace", " doctor ", "DOCTOR"},
		{"inner_space_preserved", "head nurse", "HEAD NURSE"},
		{"accented", "médecin", "MÉDECIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.RoleName(tt.input))
		})
	}
}

/*
TestRoleName_Equivalence verifies that all spellings of one role collapse
to the same key.
*/
func TestRoleName_Equivalence(t *testing.T) {
	variants := []string{"doctor", "DOCTOR", " Doctor ", "\tdOcToR\n"}

	first := normalize.RoleName(variants[0])
	for _, variant := range variants[1:] {
		assert.Equal(t, first, normalize.RoleName(variant))
	}
}

/*
TestIsBlank verifies blank detection after normalization.
*/
func TestIsBlank(t *testing.T) {
	assert.True(t, normalize.IsBlank(""))
	assert.True(t, normalize.IsBlank("   "))
	assert.True(t, normalize.IsBlank(" \t"))
	assert.False(t, normalize.IsBlank("doctor"))
}
