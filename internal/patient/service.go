// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package patient

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tranquangduy/medicore/internal/platform/validate"
	"github.com/tranquangduy/medicore/pkg/pagination"
	"github.com/tranquangduy/medicore/pkg/uuid"
)

// Service orchestrates business logic for patient records.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the data required to register a new patient record.
type CreateInput struct {
	MRN        string
	GivenName  string
	FamilyName string
	Email      string
	Phone      string
	BirthDate  time.Time
}

// Create validates and persists a new patient record.
func (service *Service) Create(context context.Context, input CreateInput) (*Patient, error) {
	validator := &validate.Validator{}
	validator.Required(FieldMRN, input.MRN).
		MaxLen(FieldMRN, input.MRN, 32).
		Required(FieldGivenName, input.GivenName).
		Required(FieldFamilyName, input.FamilyName).
		Custom(FieldBirthDate, input.BirthDate.IsZero(), "This field is required")
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Patient{
		ID:         uuid.New(),
		MRN:        input.MRN,
		GivenName:  input.GivenName,
		FamilyName: input.FamilyName,
		Email:      input.Email,
		Phone:      input.Phone,
		BirthDate:  input.BirthDate,
	}

	if err := service.repo.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("patient_created", slog.String("patient_id", record.ID))

	return record, nil
}

// Get returns a single patient record by ID.
func (service *Service) Get(context context.Context, id string) (*Patient, error) {
	return service.repo.FindByID(context, id)
}

// List returns one page of patient records plus pagination metadata.
func (service *Service) List(context context.Context, params pagination.Params) ([]*Patient, pagination.Meta, error) {
	records, total, err := service.repo.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("patient_service_list_failed: %w", err)
	}
	return records, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// UpdateInput defines the mutable subset of patient fields.
// Nil fields are left unchanged.
type UpdateInput struct {
	GivenName  *string
	FamilyName *string
	Email      *string
	Phone      *string
}

// Update applies a partial set of changes to a patient record.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Patient, error) {
	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.GivenName != nil {
		record.GivenName = *input.GivenName
	}
	if input.FamilyName != nil {
		record.FamilyName = *input.FamilyName
	}
	if input.Email != nil {
		record.Email = *input.Email
	}
	if input.Phone != nil {
		record.Phone = *input.Phone
	}

	validator := &validate.Validator{}
	validator.Required(FieldGivenName, record.GivenName).
		Required(FieldFamilyName, record.FamilyName)
	if record.Email != "" {
		validator.Email(FieldEmail, record.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("patient_updated", slog.String("patient_id", record.ID))

	return record, nil
}

// Delete soft-deletes a patient record.
func (service *Service) Delete(context context.Context, id string) error {
	// Look up first so a missing record surfaces as NotFound, not a silent no-op.
	if _, err := service.repo.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("patient_deleted", slog.String("patient_id", id))

	return nil
}
