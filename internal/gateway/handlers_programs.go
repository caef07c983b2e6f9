package gateway

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/hypertroq/internal/models"
)

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ProgramFilters{
		Search:        q.Get("search"),
		SplitType:     models.SplitType(q.Get("split_type")),
		StructureType: models.StructureType(q.Get("structure_type")),
	}
	if v := q.Get("is_template"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "is_template must be a boolean")
			return
		}
		f.IsTemplate = &b
	}
	f.Skip, _ = strconv.Atoi(q.Get("skip"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))

	programs, err := s.store.Programs(r.Context(), f)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := s.store.Program(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var data models.CreateProgramData
	if !decodeBody(w, r, &data) {
		return
	}
	if data.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	program, err := s.store.CreateProgram(r.Context(), data)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, program)
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var data models.UpdateProgramData
	if !decodeBody(w, r, &data) {
		return
	}

	program, err := s.store.UpdateProgram(r.Context(), chi.URLParam(r, "pid"), data)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	// Drop any drafts belonging to the program's sessions first.
	if program, err := s.store.Program(r.Context(), pid); err == nil {
		for _, sess := range program.Sessions {
			s.overlay.Discard(sess.ID)
		}
	}

	if err := s.store.DeleteProgram(r.Context(), pid); err != nil {
		s.writeBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloneProgram(w http.ResponseWriter, r *http.Request) {
	var data models.CloneProgramData
	if r.ContentLength > 0 && !decodeBody(w, r, &data) {
		return
	}

	program, err := s.store.CloneProgram(r.Context(), chi.URLParam(r, "pid"), data)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, program)
}

func (s *Server) handleProgramStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.ProgramStats(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var data models.CreateSessionData
	if !decodeBody(w, r, &data) {
		return
	}
	if data.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	session, err := s.store.CreateSession(r.Context(), chi.URLParam(r, "pid"), data)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var data models.UpdateSessionData
	if !decodeBody(w, r, &data) {
		return
	}

	session, err := s.store.UpdateSession(r.Context(), chi.URLParam(r, "pid"), chi.URLParam(r, "sid"), data)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")
	sid := chi.URLParam(r, "sid")

	program, err := s.store.Program(r.Context(), pid)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	if program.Session(sid) == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if len(program.Sessions) <= 1 {
		writeError(w, http.StatusConflict, "a program must keep at least one session")
		return
	}

	if err := s.store.DeleteSession(r.Context(), pid, sid); err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.overlay.Discard(sid)
	w.WriteHeader(http.StatusNoContent)
}
