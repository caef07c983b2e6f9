// Package overlay holds the per-session draft edit buffer for the program
// editor. Unsaved add/update/remove/reorder operations shadow server data
// until an explicit save or discard; nothing here is ever persisted, so a
// restart loses pending edits by design of the editing model.
package overlay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/claude/hypertroq/internal/models"
)

// Defaults applied to a freshly added exercise slot.
const (
	DefaultSets       = 3
	DefaultTargetReps = "8-12"
	DefaultRPE        = 8
)

var (
	// ErrNotDirty is returned by BeginSave when the session has no
	// pending edits.
	ErrNotDirty = errors.New("overlay: session has no unsaved changes")
	// ErrSaveInFlight is returned by BeginSave while a save for the same
	// session is already running.
	ErrSaveInFlight = errors.New("overlay: save already in flight")
)

// SaveState is the client-visible edit state of one session.
type SaveState string

const (
	StateClean   SaveState = "clean"
	StateEditing SaveState = "editing"
	StateSaving  SaveState = "saving"
)

// Store maps session ids to their locally edited exercise lists and tracks
// which sessions are dirty. Safe for concurrent use; different sessions may
// save independently, but each session allows only one save at a time.
type Store struct {
	mu      sync.Mutex
	entries map[string][]models.SessionExerciseWithDetails
	dirty   map[string]bool
	saving  map[string]bool
}

// NewStore creates an empty overlay store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string][]models.SessionExerciseWithDetails),
		dirty:   make(map[string]bool),
		saving:  make(map[string]bool),
	}
}

// SyntheticID builds the display id for a server-derived exercise row.
func SyntheticID(exerciseID string, index int) string {
	return fmt.Sprintf("%s-%d", exerciseID, index)
}

// FromServer derives the display list for a session with no local edits:
// the server's exercises re-indexed with synthetic ids and empty client-only
// fields.
func FromServer(session *models.ProgramSession) []models.SessionExerciseWithDetails {
	if session == nil {
		return nil
	}
	out := make([]models.SessionExerciseWithDetails, 0, len(session.Exercises))
	for i, ex := range session.Exercises {
		out = append(out, models.SessionExerciseWithDetails{
			SessionExercise: ex,
			ID:              SyntheticID(ex.ExerciseID, i),
		})
	}
	return out
}

// Resolve returns the current exercise list for the session: the overlay
// entry when one exists, otherwise a list derived from server truth. The
// returned slice is a copy; mutating it does not touch the store.
func (st *Store) Resolve(sessionID string, server *models.ProgramSession) []models.SessionExerciseWithDetails {
	if sessionID == "" {
		return nil
	}
	st.mu.Lock()
	entry, ok := st.entries[sessionID]
	st.mu.Unlock()
	if !ok {
		return FromServer(server)
	}
	out := make([]models.SessionExerciseWithDetails, len(entry))
	copy(out, entry)
	return out
}

// seedLocked returns the session's overlay entry, creating it from server
// truth on first mutation. Caller holds st.mu.
func (st *Store) seedLocked(sessionID string, server *models.ProgramSession) []models.SessionExerciseWithDetails {
	if entry, ok := st.entries[sessionID]; ok {
		return entry
	}
	entry := FromServer(server)
	st.entries[sessionID] = entry
	return entry
}

// AddExercise appends a new slot with editing defaults to the session's
// overlay list and marks the session dirty. No-op when sessionID is empty.
func (st *Store) AddExercise(sessionID string, server *models.ProgramSession, exercise *models.Exercise) {
	if sessionID == "" || exercise == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	entry := st.seedLocked(sessionID, server)
	entry = append(entry, models.SessionExerciseWithDetails{
		SessionExercise: models.SessionExercise{
			ExerciseID:     exercise.ID,
			ExerciseName:   exercise.Name,
			Sets:           DefaultSets,
			OrderInSession: len(entry) + 1,
		},
		ID:             uuid.NewString(),
		Equipment:      exercise.Equipment,
		PrimaryMuscles: exercise.PrimaryMuscles(),
		TargetReps:     DefaultTargetReps,
		RPE:            DefaultRPE,
	})
	st.entries[sessionID] = entry
	st.dirty[sessionID] = true
}

// UpdateExercise merges the patch into the slot with the given local id.
// Returns false (without marking dirty) when no slot matches.
func (st *Store) UpdateExercise(sessionID string, server *models.ProgramSession, localID string, patch models.SessionExercisePatch) bool {
	if sessionID == "" {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	// Seed only on a hit: a not-found patch is a pure no-op and must not
	// pin a snapshot that would shadow later server changes.
	entry, seeded := st.entries[sessionID]
	if !seeded {
		entry = FromServer(server)
	}
	for i := range entry {
		if entry[i].ID == localID {
			patch.Apply(&entry[i])
			st.entries[sessionID] = entry
			st.dirty[sessionID] = true
			return true
		}
	}
	return false
}

// RemoveExercise drops the slot with the given local id and renumbers the
// remaining slots to 1..N. Returns false when no slot matches.
func (st *Store) RemoveExercise(sessionID string, server *models.ProgramSession, localID string) bool {
	if sessionID == "" {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, seeded := st.entries[sessionID]
	if !seeded {
		entry = FromServer(server)
	}
	idx := -1
	for i := range entry {
		if entry[i].ID == localID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	kept := append(entry[:idx], entry[idx+1:]...)
	renumber(kept)
	st.entries[sessionID] = kept
	st.dirty[sessionID] = true
	return true
}

// ReorderExercises replaces the overlay list wholesale and renumbers it
// immediately, so OrderInSession is always correct in the stored overlay.
func (st *Store) ReorderExercises(sessionID string, list []models.SessionExerciseWithDetails) {
	if sessionID == "" {
		return
	}
	entry := make([]models.SessionExerciseWithDetails, len(list))
	copy(entry, list)
	renumber(entry)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries[sessionID] = entry
	st.dirty[sessionID] = true
}

// IsDirty reports whether the session has unsaved edits.
func (st *Store) IsDirty(sessionID string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dirty[sessionID]
}

// State returns the session's save state: saving while a save is in flight,
// editing while dirty, clean otherwise.
func (st *Store) State(sessionID string) SaveState {
	st.mu.Lock()
	defer st.mu.Unlock()
	switch {
	case st.saving[sessionID]:
		return StateSaving
	case st.dirty[sessionID]:
		return StateEditing
	default:
		return StateClean
	}
}

// BeginSave transitions the session from editing to saving. It fails when
// there is nothing to save or a save is already running, preventing
// duplicate concurrent submissions for the same session.
func (st *Store) BeginSave(sessionID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.saving[sessionID] {
		return ErrSaveInFlight
	}
	if !st.dirty[sessionID] {
		return ErrNotDirty
	}
	st.saving[sessionID] = true
	return nil
}

// Commit finishes a successful save: the overlay entry and dirty flag are
// cleared so the next Resolve reflects server truth.
func (st *Store) Commit(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, sessionID)
	delete(st.dirty, sessionID)
	delete(st.saving, sessionID)
}

// RollbackSave finishes a failed save: the session returns to editing with
// its overlay and dirty flag untouched, so no edits are lost and the user
// may retry.
func (st *Store) RollbackSave(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.saving, sessionID)
}

// Discard clears the session's overlay entry and dirty flag without saving.
// Invoked after session deletion so stale exercises can never resurrect.
func (st *Store) Discard(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, sessionID)
	delete(st.dirty, sessionID)
	delete(st.saving, sessionID)
}

// DiscardAll drops every draft. Used on logout.
func (st *Store) DiscardAll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries = make(map[string][]models.SessionExerciseWithDetails)
	st.dirty = make(map[string]bool)
	st.saving = make(map[string]bool)
}

// ServerShape returns the session's current list reduced to the persisted
// fields, ready for a save request.
func (st *Store) ServerShape(sessionID string, server *models.ProgramSession) []models.SessionExercise {
	resolved := st.Resolve(sessionID, server)
	out := make([]models.SessionExercise, 0, len(resolved))
	for _, ex := range resolved {
		out = append(out, ex.ServerShape())
	}
	return out
}
