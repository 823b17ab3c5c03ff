package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mindwell/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
	Invalid []string `json:"invalid"`
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := validationResponse{Error: "some answers are missing or invalid", Missing: verr.Missing, Invalid: verr.Invalid}
		if resp.Missing == nil {
			resp.Missing = []string{}
		}
		if resp.Invalid == nil {
			resp.Invalid = []string{}
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, service.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, service.ErrGeneration):
		writeError(w, http.StatusBadGateway, generationFailureMessage)
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
