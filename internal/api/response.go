package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwantia/govportal/internal/catalog"
	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/internal/session"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (srv *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		srv.logger.Error("Request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Success: false, Message: err.Error()})
}

var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, catalog.ErrUnknownTable),
		errors.Is(err, datatable.ErrRowNotVisible):
		return http.StatusNotFound
	case errors.Is(err, datatable.ErrBulkCancelled):
		return http.StatusConflict
	case errors.Is(err, datatable.ErrUnknownAction),
		errors.Is(err, datatable.ErrNoSelection),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
