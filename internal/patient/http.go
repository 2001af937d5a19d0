// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package patient

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tranquangduy/medicore/internal/platform/middleware"
	requestutil "github.com/tranquangduy/medicore/internal/platform/request"
	"github.com/tranquangduy/medicore/internal/platform/respond"
	"github.com/tranquangduy/medicore/internal/platform/validate"
	"github.com/tranquangduy/medicore/pkg/pagination"
)

// Handler implements the patient record HTTP endpoints.
type Handler struct {
	patientService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{patientService: service}
}

// Routes returns a [chi.Router] configured with patient-specific routes.
// Reads require patient:read, mutations require patient:write.
//
// The consult gateway router is mounted inside the read group at
// /{patientID}/consults so it shares the patient read scope.
func (handler *Handler) Routes(consultRoutes chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Group(func(reads chi.Router) {
		reads.Use(middleware.RequireScope(ScopeRead))
		reads.Get("/", handler.list)
		reads.Get("/{patientID}", handler.get)
		reads.Mount("/{patientID}/consults", consultRoutes)
	})

	router.Group(func(writes chi.Router) {
		writes.Use(middleware.RequireScope(ScopeWrite))
		writes.Post("/", handler.create)
		writes.Put("/{patientID}", handler.update)
		writes.Delete("/{patientID}", handler.remove)
	})

	return router
}

type createPatientRequest struct {
	MRN        string `json:"mrn"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"` // RFC 3339 date, e.g. 1990-04-21
}

type updatePatientRequest struct {
	GivenName  *string `json:"given_name"`
	FamilyName *string `json:"family_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
}

// create handles POST /api/v1/patients
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createPatientRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	birthDate, err := time.Parse("2006-01-02", input.BirthDate)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldBirthDate, "Must be a valid date in YYYY-MM-DD format"))
		return
	}

	created, err := handler.patientService.Create(request.Context(), CreateInput{
		MRN:        input.MRN,
		GivenName:  input.GivenName,
		FamilyName: input.FamilyName,
		Email:      input.Email,
		Phone:      input.Phone,
		BirthDate:  birthDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// get handles GET /api/v1/patients/{patientID}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	patientID := requestutil.ID(request, "patientID")

	validator := &validate.Validator{}
	validator.UUID(FieldID, patientID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.patientService.Get(request.Context(), patientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// list handles GET /api/v1/patients
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	records, meta, err := handler.patientService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, meta)
}

// update handles PUT /api/v1/patients/{patientID}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	patientID := requestutil.ID(request, "patientID")

	var input updatePatientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID(FieldID, patientID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.patientService.Update(request.Context(), patientID, UpdateInput{
		GivenName:  input.GivenName,
		FamilyName: input.FamilyName,
		Email:      input.Email,
		Phone:      input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// remove handles DELETE /api/v1/patients/{patientID}
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	patientID := requestutil.ID(request, "patientID")

	validator := &validate.Validator{}
	validator.UUID(FieldID, patientID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.patientService.Delete(request.Context(), patientID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
