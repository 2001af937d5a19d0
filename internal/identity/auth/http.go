// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

/*
HTTP delivery layer for the identity core.

It implements the gateway for the authentication lifecycle — enrollment,
login, and password rotation.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Every credential failure maps to one generic 401; faults never
    leak their cause to the caller.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tranquangduy/medicore/internal/platform/apperr"
	"github.com/tranquangduy/medicore/internal/platform/middleware"
	requestutil "github.com/tranquangduy/medicore/internal/platform/request"
	"github.com/tranquangduy/medicore/internal/platform/respond"
	"github.com/tranquangduy/medicore/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a signed token.
//   - PUT  /password : Rotates a stored password hash (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/password", handler.rotatePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type rotatePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

/*
register handles the creation of a new account.

POST /api/v1/auth/register

Request:
  - Body: registerRequest (Email, Password, Role)

Response:
  - 201: Account: Created principal
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	account, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		RoleName: input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

/*
login handles credential validation and token issuance.

POST /api/v1/auth/login

Description: Validates the email/password pair and returns a signed,
time-bounded token carrying the caller's scope snapshot. Unknown email and
wrong password are indistinguishable in the response.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Token: {access_token, token_type, expires_in, scopes}
  - 401: Invalid email or password (generic)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, token)
}

/*
rotatePassword handles password hash rotation.

PUT /api/v1/auth/password

Description: A caller may rotate their own password; rotating another
principal's password requires the account:manage scope.

Request:
  - Body: rotatePasswordRequest (Email, NewPassword)

Response:
  - 204: Rotation complete
  - 403: Caller may not rotate this account's password
  - 404: No account owns the email
*/
func (handler *Handler) rotatePassword(writer http.ResponseWriter, request *http.Request) {
	var input rotatePasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Self-service or delegated administration only.
	if claims.Subject != input.Email && !claims.HasScope(ScopeAccountManage) {
		respond.Error(writer, request, apperr.Forbidden("Cannot rotate another account's password"))
		return
	}

	if err := handler.authService.RotatePassword(request.Context(), input.Email, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
