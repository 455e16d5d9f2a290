package internal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"portfolio-api/internal/models"
	"portfolio-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// parseID reads the {id} path parameter. Anything that is not a positive
// integer cannot name a project, so it is reported as not found.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, store.ErrNotFound
	}
	return id, nil
}

// decodeBody decodes a JSON request body into v. An empty body decodes as {}.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.Store.List(r.Context(), parseListOptions(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in models.CreateProjectRequest
	if err := decodeBody(r, &in); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_JSON")
		return
	}

	p, err := s.Store.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Metrics.RecordMutation("create")
	s.requestLog(r).WithField("project_id", p.ID).Info("Project created")
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch models.UpdateProjectRequest
	if err := decodeBody(r, &patch); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_JSON")
		return
	}

	p, err := s.Store.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Metrics.RecordMutation("update")
	s.requestLog(r).WithFields(logrus.Fields{
		"project_id": p.ID,
		"touch_only": patch.IsEmpty(),
	}).Info("Project updated")
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Metrics.RecordMutation("delete")
	s.requestLog(r).WithField("project_id", id).Info("Project deleted")
	writeJSON(w, http.StatusOK, models.DeleteResponse{Message: "Project deleted successfully"})
}
