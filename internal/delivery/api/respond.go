package api

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeUseCaseError maps domain errors to status codes; anything unknown is
// logged and reported as a 500 without details.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, usecase.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrListingUnavailable),
		errors.Is(err, usecase.ErrProfileIncomplete):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
