package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/hypertroq/internal/models"
	"github.com/claude/hypertroq/internal/overlay"
)

// editorView is the editor's read model: the draft merged over server truth
// plus the save state the UI needs for its dirty indicator.
type editorView struct {
	Exercises []models.SessionExerciseWithDetails `json:"exercises"`
	Dirty     bool                                `json:"dirty"`
	State     overlay.SaveState                   `json:"state"`
}

func (s *Server) editorView(sid string, server *models.ProgramSession) editorView {
	return editorView{
		Exercises: s.overlay.Resolve(sid, server),
		Dirty:     s.overlay.IsDirty(sid),
		State:     s.overlay.State(sid),
	}
}

// serverSession loads the program and picks the addressed session. Writes
// the error response itself when either is missing.
func (s *Server) serverSession(w http.ResponseWriter, r *http.Request) (*models.ProgramSession, bool) {
	pid := chi.URLParam(r, "pid")
	sid := chi.URLParam(r, "sid")

	program, err := s.store.Program(r.Context(), pid)
	if err != nil {
		s.writeBackendError(w, err)
		return nil, false
	}
	session := program.Session(sid)
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}

func (s *Server) handleEditorResolve(w http.ResponseWriter, r *http.Request) {
	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.editorView(session.ID, session))
}

func (s *Server) handleEditorAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExerciseID string `json:"exercise_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ExerciseID == "" {
		writeError(w, http.StatusBadRequest, "exercise_id required")
		return
	}

	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	exercise, err := s.store.Exercise(r.Context(), req.ExerciseID)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}

	s.overlay.AddExercise(session.ID, session, exercise)
	writeJSON(w, http.StatusOK, s.editorView(session.ID, session))
}

func (s *Server) handleEditorUpdate(w http.ResponseWriter, r *http.Request) {
	var patch models.SessionExercisePatch
	if !decodeBody(w, r, &patch) {
		return
	}

	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	if !s.overlay.UpdateExercise(session.ID, session, chi.URLParam(r, "localID"), patch) {
		writeError(w, http.StatusNotFound, "exercise not in session")
		return
	}
	writeJSON(w, http.StatusOK, s.editorView(session.ID, session))
}

func (s *Server) handleEditorRemove(w http.ResponseWriter, r *http.Request) {
	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	if !s.overlay.RemoveExercise(session.ID, session, chi.URLParam(r, "localID")) {
		writeError(w, http.StatusNotFound, "exercise not in session")
		return
	}
	writeJSON(w, http.StatusOK, s.editorView(session.ID, session))
}

func (s *Server) handleEditorReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	current := s.overlay.Resolve(session.ID, session)
	if req.From < 0 || req.From >= len(current) || req.To < 0 || req.To >= len(current) {
		writeError(w, http.StatusBadRequest, "reorder index out of range")
		return
	}
	s.overlay.ReorderExercises(session.ID, overlay.Reorder(current, req.From, req.To))
	writeJSON(w, http.StatusOK, s.editorView(session.ID, session))
}

func (s *Server) handleEditorState(w http.ResponseWriter, r *http.Request) {
	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dirty": s.overlay.IsDirty(session.ID),
		"state": s.overlay.State(session.ID),
	})
}

func (s *Server) handleEditorSave(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	if err := s.overlay.BeginSave(session.ID); err != nil {
		s.writeBackendError(w, err)
		return
	}

	shape := s.overlay.ServerShape(session.ID, session)
	updated, err := s.store.UpdateSession(r.Context(), pid, session.ID, models.UpdateSessionData{
		Exercises: &shape,
	})
	if err != nil {
		// Keep the draft so the user can retry or keep editing.
		s.overlay.RollbackSave(session.ID)
		s.writeBackendError(w, err)
		return
	}

	s.overlay.Commit(session.ID)
	writeJSON(w, http.StatusOK, s.editorView(session.ID, updated))
}

func (s *Server) handleEditorDiscard(w http.ResponseWriter, r *http.Request) {
	session, ok := s.serverSession(w, r)
	if !ok {
		return
	}
	s.overlay.Discard(session.ID)
	writeJSON(w, http.StatusOK, s.editorView(session.ID, session))
}
