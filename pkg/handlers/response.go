package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ServiceError maps a service-layer error onto the HTTP response. Sentinel
// errors get their canonical status; anything else is a 500.
func ServiceError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return ErrorResponse(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return ErrorResponse(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, apperrors.ErrAlreadyResolved):
		return ErrorResponse(w, http.StatusConflict, "already_resolved", err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return ErrorResponse(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, apperrors.ErrNotConfirmed):
		return ErrorResponse(w, http.StatusBadRequest, "not_confirmed", err.Error())
	case errors.Is(err, apperrors.ErrTooManyFiles):
		return ErrorResponse(w, http.StatusBadRequest, "too_many_files", err.Error())
	case errors.Is(err, apperrors.ErrUploadFailed):
		return ErrorResponse(w, http.StatusBadGateway, "upload_failed", err.Error())
	default:
		return ErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
