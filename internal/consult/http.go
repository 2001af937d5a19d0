// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package consult

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tranquangduy/medicore/internal/platform/request"
	"github.com/tranquangduy/medicore/internal/platform/respond"
	"github.com/tranquangduy/medicore/internal/platform/validate"
)

// FieldPatientID identifies the patient reference in validation errors.
const FieldPatientID = "patient_id"

// Handler implements the consult gateway HTTP endpoints.
type Handler struct {
	consultService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{consultService: service}
}

// Routes returns a [chi.Router] with the consult gateway routes. The router
// is mounted under the patient subtree at /{patientID}/consults, so the
// patient read scope is already enforced by the parent group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listByPatient)

	return router
}

// listByPatient handles GET /api/v1/patients/{patientID}/consults
//
// The upstream body is relayed verbatim; it is already validated JSON.
func (handler *Handler) listByPatient(writer http.ResponseWriter, request *http.Request) {
	patientID := requestutil.ID(request, "patientID")

	validator := &validate.Validator{}
	validator.UUID(FieldPatientID, patientID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := handler.consultService.ListByPatient(request.Context(), patientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(payload)
}
