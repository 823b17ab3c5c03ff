package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"mindwell/internal/model"
	"mindwell/internal/transport/rest/middleware"
)

// AuthAPI is the part of the auth service the handlers use
type AuthAPI interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, claims *model.UserClaims) error
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc AuthAPI
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc AuthAPI) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
//
//	@Summary	Sign in with a registration number (students) or email and password (staff)
//	@Tags		auth
//	@Param		body	body		model.LoginRequest	true	"credentials"
//	@Success	200		{object}	model.LoginResponse
//	@Failure	401		{object}	errorResponse
//	@Router		/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SignUp handles POST /v1/auth/signup
//
//	@Summary	Register a new student account
//	@Tags		auth
//	@Param		body	body		model.SignUpRequest	true	"student details"
//	@Success	201		{object}	model.LoginResponse
//	@Failure	409		{object}	errorResponse
//	@Failure	422		{object}	validationResponse
//	@Router		/v1/auth/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.SignUp(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(r.Context(), middleware.GetClaims(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authSvc.CurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
