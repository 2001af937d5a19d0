// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tranquangduy/medicore/internal/platform/apperr"
	"github.com/tranquangduy/medicore/internal/platform/dberr"
	"github.com/tranquangduy/medicore/pkg/pagination"
)

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the patient [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Patient, error) {
	const query = `
		SELECT id, mrn, givenname, familyname, email, phone, birthdate, createdat, updatedat
		FROM care.patient
		WHERE id = $1 AND deletedat IS NULL`

	patient := &Patient{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&patient.ID,
		&patient.MRN,
		&patient.GivenName,
		&patient.FamilyName,
		&patient.Email,
		&patient.Phone,
		&patient.BirthDate,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Patient")
		}
		return nil, fmt.Errorf("postgres_patient_repo_find_by_id_failed: %w", err)
	}

	return patient, nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Patient, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM care.patient
		WHERE deletedat IS NULL`

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_patient_repo_count_failed: %w", err)
	}

	const query = `
		SELECT id, mrn, givenname, familyname, email, phone, birthdate, createdat, updatedat
		FROM care.patient
		WHERE deletedat IS NULL
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_patient_repo_list_failed: %w", err)
	}
	defer rows.Close()

	patients := make([]*Patient, 0, params.Limit)
	for rows.Next() {
		patient := &Patient{}
		err := rows.Scan(
			&patient.ID,
			&patient.MRN,
			&patient.GivenName,
			&patient.FamilyName,
			&patient.Email,
			&patient.Phone,
			&patient.BirthDate,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_patient_repo_scan_failed: %w", err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_patient_repo_rows_failed: %w", err)
	}

	return patients, total, nil
}

func (repository *PostgresRepository) Create(context context.Context, patient *Patient) error {
	const query = `
		INSERT INTO care.patient (id, mrn, givenname, familyname, email, phone, birthdate, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		patient.ID,
		patient.MRN,
		patient.GivenName,
		patient.FamilyName,
		patient.Email,
		patient.Phone,
		patient.BirthDate,
		patient.CreatedAt,
		patient.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Medical record number is already registered")
		}
		return fmt.Errorf("postgres_patient_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, patient *Patient) error {
	const query = `
		UPDATE care.patient
		SET givenname = $2, familyname = $3, email = $4, phone = $5, updatedat = $6
		WHERE id = $1 AND deletedat IS NULL`

	patient.UpdatedAt = time.Now()
	commandTag, err := repository.pool.Exec(context, query,
		patient.ID,
		patient.GivenName,
		patient.FamilyName,
		patient.Email,
		patient.Phone,
		patient.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_patient_repo_update_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Patient")
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	const query = `
		UPDATE care.patient
		SET deletedat = $2
		WHERE id = $1 AND deletedat IS NULL`

	commandTag, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_patient_repo_soft_delete_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Patient")
	}

	return nil
}
