package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/modules/migration/importing"
	"github.com/iota-uz/migscope/modules/migration/services"
	"github.com/iota-uz/migscope/pkg/excel"
	"github.com/iota-uz/migscope/pkg/serrors"
)

// APIError is the JSON error envelope of every failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(err)
	}
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIError{Code: code, Message: message})
}

// writeError maps domain errors onto HTTP statuses. Structural spreadsheet
// defects are the caller's data problem, a kind mismatch is a conflict with
// the requested import, unknown keys are plain 404s.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, importing.ErrKindMismatch):
		status = http.StatusConflict
	case errors.Is(err, excel.ErrNoWorksheet),
		errors.Is(err, excel.ErrMarkerNotFound),
		errors.Is(err, excel.ErrHeaderNotFound):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, combined.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidQuery):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownEnvironment):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEnvironmentUnreachable):
		status = http.StatusBadGateway
	}

	var base *serrors.Base
	if errors.As(err, &base) {
		writeJSON(w, status, APIError{Code: base.Code, Message: base.Message, Hint: base.Hint})
		return
	}

	code := "INTERNAL"
	switch status {
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusBadRequest:
		code = "BAD_REQUEST"
	case http.StatusUnprocessableEntity:
		code = "UNPROCESSABLE"
	}
	writeAPIError(w, status, code, err.Error())
}
