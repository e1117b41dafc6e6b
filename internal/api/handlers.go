package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mwantia/govportal/internal/catalog"
	"github.com/mwantia/govportal/internal/datatable"
	"github.com/mwantia/govportal/internal/session"
)

type sessionResponse struct {
	Session string         `json:"session"`
	Table   string         `json:"table"`
	View    datatable.View `json:"view"`
}

type bulkResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Count   int64          `json:"count"`
	View    datatable.View `json:"view"`
}

type filtersRequest struct {
	Search    string            `json:"search"`
	Status    string            `json:"status"`
	DateStart string            `json:"date_start"`
	DateEnd   string            `json:"date_end"`
	Advanced  map[string]string `json:"advanced"`
}

type sortRequest struct {
	Column string `json:"column"`
}

type pageRequest struct {
	Page int `json:"page"`
}

type entriesRequest struct {
	ItemsPerPage int `json:"items_per_page"`
}

type checkedRequest struct {
	Checked bool `json:"checked"`
}

type bulkRequest struct {
	Action  string `json:"action"`
	Confirm bool   `json:"confirm"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

func (srv *Server) session(r *http.Request) (*session.Session, error) {
	return srv.sessions.Get(chi.URLParam(r, "sid"))
}

func rowID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid row id '%s'", errBadRequest, chi.URLParam(r, "id"))
	}
	return id, nil
}

// withView runs fn against the session's manager and answers with the view
// it returns.
func (srv *Server) withView(w http.ResponseWriter, r *http.Request, fn func(m *datatable.Manager, s *session.Session) (datatable.View, error)) {
	s, err := srv.session(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	var view datatable.View
	if err := s.Do(func(m *datatable.Manager) error {
		view, err = fn(m, s)
		return err
	}); err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: s.ID, Table: s.Table, View: view})
}

func (srv *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := srv.store.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (srv *Server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := srv.store.Stats(r.Context())
	if err != nil {
		srv.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (srv *Server) createSession(w http.ResponseWriter, r *http.Request) {
	s, err := srv.sessions.Create(r.Context(), chi.URLParam(r, "table"))
	if err != nil {
		srv.writeError(w, err)
		return
	}

	var view datatable.View
	s.Do(func(m *datatable.Manager) error {
		view = m.View()
		return nil
	})

	writeJSON(w, http.StatusCreated, sessionResponse{Session: s.ID, Table: s.Table, View: view})
}

func (srv *Server) getSession(w http.ResponseWriter, r *http.Request) {
	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		return m.View(), nil
	})
}

func (srv *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := srv.sessions.Delete(chi.URLParam(r, "sid")); err != nil {
		srv.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) applyFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := decode(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		return m.ApplyFilters(datatable.Criteria{
			Search:    req.Search,
			Status:    req.Status,
			DateStart: req.DateStart,
			DateEnd:   req.DateEnd,
			Advanced:  req.Advanced,
		}), nil
	})
}

func (srv *Server) sortBy(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decode(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		return m.SortBy(req.Column), nil
	})
}

func (srv *Server) changePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decode(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		return m.ChangePage(req.Page), nil
	})
}

func (srv *Server) setEntries(w http.ResponseWriter, r *http.Request) {
	var req entriesRequest
	if err := decode(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		return m.SetItemsPerPage(req.ItemsPerPage), nil
	})
}

func (srv *Server) selectRow(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	var req checkedRequest
	if err := decode(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		return m.SelectRow(id, req.Checked), nil
	})
}

func (srv *Server) selectAll(w http.ResponseWriter, r *http.Request) {
	var req checkedRequest
	if err := decode(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		return m.ToggleSelectAll(req.Checked), nil
	})
}

func (srv *Server) reload(w http.ResponseWriter, r *http.Request) {
	srv.withView(w, r, func(m *datatable.Manager, s *session.Session) (datatable.View, error) {
		if err := m.Reload(r.Context(), s.Source()); err != nil {
			return datatable.View{}, err
		}
		return m.View(), nil
	})
}

func (srv *Server) deleteRow(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.runBulk(w, r, func(m *datatable.Manager, s *session.Session, exec datatable.BulkExecutor) (datatable.BulkResult, error) {
		return m.DeleteRow(r.Context(), id, nil, exec, s.Source())
	})
}

func (srv *Server) bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decode(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}
	action, err := datatable.ParseBulkAction(req.Action)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	confirm := func(datatable.BulkRequest) bool {
		return req.Confirm
	}

	srv.runBulk(w, r, func(m *datatable.Manager, s *session.Session, exec datatable.BulkExecutor) (datatable.BulkResult, error) {
		return m.RunBulk(r.Context(), action, confirm, exec, s.Source())
	})
}

func (srv *Server) runBulk(w http.ResponseWriter, r *http.Request, fn func(m *datatable.Manager, s *session.Session, exec datatable.BulkExecutor) (datatable.BulkResult, error)) {
	s, err := srv.session(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	exec := s.Executor()
	if e, ok := exec.(*catalog.Executor); ok {
		exec = e.WithLanguage(r.Header.Get("Accept-Language"))
	}

	var (
		result datatable.BulkResult
		view   datatable.View
	)
	if err := s.Do(func(m *datatable.Manager) error {
		result, err = fn(m, s, exec)
		view = m.View()
		return err
	}); err != nil {
		srv.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bulkResponse{
		Success: true,
		Message: result.Message,
		Count:   result.Count,
		View:    view,
	})
}
