// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tranquangduy/medicore/internal/platform/request"
	"github.com/tranquangduy/medicore/internal/platform/respond"
	"github.com/tranquangduy/medicore/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the role administration HTTP endpoints.
type Handler struct {
	roleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{roleService: service}
}

// Routes returns a [chi.Router] configured with role-specific routes.
//
// # Endpoints
//   - POST /          : Find-or-create a role by name (idempotent discovery).
//   - PUT  /{roleID}  : Rename and/or re-scope an existing role.
//   - GET  /{roleRef} : Resolve a role by ID or name.
//
// All routes are mounted behind RequireScope(ScopeManage) by the server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createOrGet)
	router.Put("/{roleID}", handler.update)
	router.Get("/{roleRef}", handler.resolve)

	return router
}

// # Request Payloads

type upsertRoleRequest struct {
	Name   string   `json:"name"`
	Scopes []string `json:"scopes"`
}

/*
createOrGet handles idempotent role discovery.

POST /api/v1/roles

Description: Normalizes the submitted name and returns the existing role if
one owns it, otherwise creates a new role with the submitted scopes.

Request:
  - Body: upsertRoleRequest (Name, Scopes)

Response:
  - 200: Role: The existing or freshly created role
  - 400: ErrInvalidJSON: Bad input or blank name after normalization
*/
func (handler *Handler) createOrGet(writer http.ResponseWriter, request *http.Request) {
	var input upsertRoleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 64)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolved, err := handler.roleService.FindOrCreate(request.Context(), input.Name, input.Scopes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, resolved)
}

/*
update handles role renames and wholesale scope replacement.

PUT /api/v1/roles/{roleID}

Request:
  - Body: upsertRoleRequest (Name, Scopes)

Response:
  - 200: Role: The updated role
  - 404: Role not found
  - 409: Rename collides with another role's normalized name
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	roleID := requestutil.ID(request, "roleID")

	var input upsertRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID(FieldID, roleID).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 64)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.roleService.Update(request.Context(), roleID, input.Name, input.Scopes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
resolve handles role lookup by ID or name.

GET /api/v1/roles/{roleRef}

Response:
  - 200: Role
  - 404: Role not found
*/
func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	ref := requestutil.Param(request, "roleRef")

	resolved, err := handler.roleService.Resolve(request.Context(), ref)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, resolved)
}
