// Package query wraps the REST client with a request-deduplicating,
// invalidate-on-mutation cache. Reads for the same key share one in-flight
// fetch; each mutation declares the key families it invalidates.
package query

import (
	"context"
	"strings"
	"sync"

	"github.com/claude/hypertroq/internal/api"
	"github.com/claude/hypertroq/internal/models"
)

// Store is the cached view of the remote resources.
type Store struct {
	api *api.Client

	mu       sync.Mutex
	entries  map[Key]any
	inflight map[Key]*inflightCall
}

type inflightCall struct {
	done chan struct{}
	val  any
	err  error
}

// NewStore creates a Store over the given client.
func NewStore(client *api.Client) *Store {
	return &Store{
		api:      client,
		entries:  make(map[Key]any),
		inflight: make(map[Key]*inflightCall),
	}
}

// get returns the cached value for key, joining an in-flight fetch if one
// exists, otherwise fetching and caching.
func (s *Store) get(ctx context.Context, key Key, fetch func(context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	if v, ok := s.entries[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	if c, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-c.done:
			return c.val, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c := &inflightCall{done: make(chan struct{})}
	s.inflight[key] = c
	s.mu.Unlock()

	v, err := fetch(ctx)

	s.mu.Lock()
	delete(s.inflight, key)
	if err == nil {
		s.entries[key] = v
	}
	c.val, c.err = v, err
	close(c.done)
	s.mu.Unlock()

	return v, err
}

// invalidate drops every cached entry whose key starts with one of the
// given prefixes.
func (s *Store) invalidate(prefixes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(string(key), p) {
				delete(s.entries, key)
				break
			}
		}
	}
}

// InvalidateAll drops the entire cache. Called on logout so the next login
// never sees another account's data.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]any)
}

func cachedGet[T any](ctx context.Context, s *Store, key Key, fetch func(context.Context) (T, error)) (T, error) {
	v, err := s.get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// --- Cached reads ---

// Programs lists programs matching the filters.
func (s *Store) Programs(ctx context.Context, f models.ProgramFilters) ([]models.ProgramListItem, error) {
	return cachedGet(ctx, s, keyProgramList(f), func(ctx context.Context) ([]models.ProgramListItem, error) {
		return s.api.ListPrograms(ctx, f)
	})
}

// Program fetches one program including sessions.
func (s *Store) Program(ctx context.Context, id string) (*models.Program, error) {
	return cachedGet(ctx, s, keyProgramDetail(id), func(ctx context.Context) (*models.Program, error) {
		return s.api.GetProgram(ctx, id)
	})
}

// ProgramStats fetches one program's volume statistics.
func (s *Store) ProgramStats(ctx context.Context, id string) (*models.ProgramStats, error) {
	return cachedGet(ctx, s, keyProgramStats(id), func(ctx context.Context) (*models.ProgramStats, error) {
		return s.api.GetProgramStats(ctx, id)
	})
}

// Exercises lists exercises matching the filters.
func (s *Store) Exercises(ctx context.Context, f models.ExerciseFilters) ([]models.Exercise, error) {
	return cachedGet(ctx, s, keyExerciseList(f), func(ctx context.Context) ([]models.Exercise, error) {
		return s.api.ListExercises(ctx, f)
	})
}

// Exercise fetches one exercise.
func (s *Store) Exercise(ctx context.Context, id string) (*models.Exercise, error) {
	return cachedGet(ctx, s, keyExerciseDetail(id), func(ctx context.Context) (*models.Exercise, error) {
		return s.api.GetExercise(ctx, id)
	})
}

// --- Mutations with declared invalidations ---

// CreateProgram creates a program and invalidates program lists.
func (s *Store) CreateProgram(ctx context.Context, data models.CreateProgramData) (*models.Program, error) {
	p, err := s.api.CreateProgram(ctx, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(prefixProgramLists)
	return p, nil
}

// UpdateProgram updates a program and invalidates its detail plus lists.
func (s *Store) UpdateProgram(ctx context.Context, id string, data models.UpdateProgramData) (*models.Program, error) {
	p, err := s.api.UpdateProgram(ctx, id, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(prefixProgramLists, string(keyProgramDetail(id)))
	return p, nil
}

// DeleteProgram deletes a program and invalidates everything derived from it.
func (s *Store) DeleteProgram(ctx context.Context, id string) error {
	if err := s.api.DeleteProgram(ctx, id); err != nil {
		return err
	}
	s.invalidate(prefixProgramLists, string(keyProgramDetail(id)), string(keyProgramStats(id)))
	return nil
}

// CloneProgram clones a template and invalidates program lists.
func (s *Store) CloneProgram(ctx context.Context, templateID string, data models.CloneProgramData) (*models.Program, error) {
	p, err := s.api.CloneProgram(ctx, templateID, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(prefixProgramLists)
	return p, nil
}

// CreateSession adds a session and invalidates the parent program.
func (s *Store) CreateSession(ctx context.Context, programID string, data models.CreateSessionData) (*models.ProgramSession, error) {
	sess, err := s.api.CreateSession(ctx, programID, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(string(keyProgramDetail(programID)), string(keyProgramStats(programID)))
	return sess, nil
}

// UpdateSession updates a session and invalidates the parent program.
func (s *Store) UpdateSession(ctx context.Context, programID, sessionID string, data models.UpdateSessionData) (*models.ProgramSession, error) {
	sess, err := s.api.UpdateSession(ctx, programID, sessionID, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(string(keyProgramDetail(programID)), string(keyProgramStats(programID)))
	return sess, nil
}

// DeleteSession removes a session and invalidates the parent program.
func (s *Store) DeleteSession(ctx context.Context, programID, sessionID string) error {
	if err := s.api.DeleteSession(ctx, programID, sessionID); err != nil {
		return err
	}
	s.invalidate(string(keyProgramDetail(programID)), string(keyProgramStats(programID)))
	return nil
}

// CreateExercise creates an exercise and invalidates exercise lists.
func (s *Store) CreateExercise(ctx context.Context, data models.CreateExerciseData) (*models.Exercise, error) {
	e, err := s.api.CreateExercise(ctx, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(prefixExerciseLists)
	return e, nil
}

// UpdateExercise updates an exercise and invalidates its detail plus lists.
func (s *Store) UpdateExercise(ctx context.Context, id string, data models.UpdateExerciseData) (*models.Exercise, error) {
	e, err := s.api.UpdateExercise(ctx, id, data)
	if err != nil {
		return nil, err
	}
	s.invalidate(prefixExerciseLists, string(keyExerciseDetail(id)))
	return e, nil
}

// DeleteExercise deletes an exercise and invalidates its detail plus lists.
func (s *Store) DeleteExercise(ctx context.Context, id string) error {
	if err := s.api.DeleteExercise(ctx, id); err != nil {
		return err
	}
	s.invalidate(prefixExerciseLists, string(keyExerciseDetail(id)))
	return nil
}
