// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

// Package patient implements patient record management for the hospital services.
package patient

import "time"

// Patient represents a patient record fronted by the Medicore backend.
type Patient struct {
	ID         string    `json:"id"`
	MRN        string    `json:"mrn"` // Medical record number, unique per hospital network.
	GivenName  string    `json:"given_name"`
	FamilyName string    `json:"family_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	BirthDate  time.Time `json:"birth_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// # Capabilities

const (
	// ScopeRead guards patient record reads.
	ScopeRead = "patient:read"

	// ScopeWrite guards patient record mutations.
	ScopeWrite = "patient:write"
)

// # Field Identifiers

const (
	FieldID         = "id"
	FieldMRN        = "mrn"
	FieldGivenName  = "given_name"
	FieldFamilyName = "family_name"
	FieldEmail      = "email"
	FieldBirthDate  = "birth_date"
)
