package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "studiobooking/internal/errors"
	"studiobooking/internal/recurrence"
	"studiobooking/internal/repository"
	"studiobooking/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError translates the store and validation taxonomy into HTTP statuses.
// Every failure reaches the client as a distinguishable reason string; raw
// storage errors never do.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, errorResponse{Error: httpErr.Message})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, recurrence.ErrInvalidRange),
		errors.Is(err, recurrence.ErrInvalidWeekday),
		errors.Is(err, recurrence.ErrInvalidInterval),
		errors.Is(err, service.ErrEmptyExpansion):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.BadRequest(fmt.Sprintf("invalid %s %q, expected YYYY-MM-DD", field, value))
	}
	return t, nil
}

func parseTime(field, value string) (recurrence.TimeOfDay, error) {
	t, err := recurrence.ParseTimeOfDay(value)
	if err != nil {
		return recurrence.TimeOfDay{}, apperrors.BadRequest(fmt.Sprintf("invalid %s %q, expected HH:MM or HH:MM:SS", field, value))
	}
	return t, nil
}
