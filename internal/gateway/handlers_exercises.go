package gateway

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/hypertroq/internal/models"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ExerciseFilters{
		MuscleGroup: models.MuscleGroup(q.Get("muscle_group")),
		Search:      q.Get("search"),
	}
	if f.MuscleGroup != "" && !models.ValidMuscleGroup(f.MuscleGroup) {
		writeError(w, http.StatusBadRequest, "unknown muscle group")
		return
	}
	f.Skip, _ = strconv.Atoi(q.Get("skip"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))

	exercises, err := s.store.Exercises(r.Context(), f)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	exercise, err := s.store.Exercise(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var data models.CreateExerciseData
	if !decodeBody(w, r, &data) {
		return
	}
	if data.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if err := models.ValidateContributions(data.MuscleContributions); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	exercise, err := s.store.CreateExercise(r.Context(), data)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var data models.UpdateExerciseData
	if !decodeBody(w, r, &data) {
		return
	}
	// Contributions are all-or-nothing on update: when present they must
	// satisfy the same invariants as on create.
	if data.MuscleContributions != nil {
		if err := models.ValidateContributions(data.MuscleContributions); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	exercise, err := s.store.UpdateExercise(r.Context(), chi.URLParam(r, "id"), data)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteExercise(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
