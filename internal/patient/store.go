// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package patient

import (
	"context"

	"github.com/tranquangduy/medicore/pkg/pagination"
)

// Repository defines the data access contract for patient records.
type Repository interface {

	// FindByID returns the patient with the given ID, excluding soft-deleted rows.
	FindByID(context context.Context, id string) (*Patient, error)

	// List returns one page of patients ordered by creation time, plus the
	// total live-row count for pagination metadata.
	List(context context.Context, params pagination.Params) ([]*Patient, int, error)

	// Create persists a brand-new patient record.
	Create(context context.Context, patient *Patient) error

	// Update persists changes to a patient's mutable fields.
	Update(context context.Context, patient *Patient) error

	// SoftDelete marks the record as deleted without removing the row.
	SoftDelete(context context.Context, id string) error
}
