package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/claude/hypertroq/internal/api"
	"github.com/claude/hypertroq/internal/models"
)

// newBackend spins up a fake REST backend counting hits per path.
func newBackend(t *testing.T, hits *sync.Map, handlers map[string]http.HandlerFunc) *api.Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		v, _ := hits.LoadOrStore(key, new(int64))
		atomic.AddInt64(v.(*int64), 1)

		h, ok := handlers[key]
		if !ok {
			t.Errorf("unexpected request: %s", key)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	return api.New(ts.URL, nil)
}

func hitCount(hits *sync.Map, key string) int64 {
	v, ok := hits.Load(key)
	if !ok {
		return 0
	}
	return atomic.LoadInt64(v.(*int64))
}

// TestCachedRead verifies repeated identical reads hit the backend once.
func TestCachedRead(t *testing.T) {
	var hits sync.Map
	client := newBackend(t, &hits, map[string]http.HandlerFunc{
		"GET /programs/p1": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"p1","name":"PPL","sessions":[]}`))
		},
	})
	store := NewStore(client)
	ctx := context.Background()

	for range 3 {
		p, err := store.Program(ctx, "p1")
		if err != nil {
			t.Fatal(err)
		}
		if p.Name != "PPL" {
			t.Errorf("name = %q, want PPL", p.Name)
		}
	}

	if n := hitCount(&hits, "GET /programs/p1"); n != 1 {
		t.Errorf("backend hits = %d, want 1", n)
	}
}

// TestConcurrentDedup verifies concurrent identical reads share one fetch.
func TestConcurrentDedup(t *testing.T) {
	release := make(chan struct{})
	var hits sync.Map
	client := newBackend(t, &hits, map[string]http.HandlerFunc{
		"GET /exercises": func(w http.ResponseWriter, r *http.Request) {
			<-release
			_, _ = w.Write([]byte(`[{"id":"e1","name":"Squat"}]`))
		},
	})
	store := NewStore(client)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = store.Exercises(context.Background(), models.ExerciseFilters{})
		}()
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("goroutine %d: %v", i, err)
		}
	}
	if n := hitCount(&hits, "GET /exercises"); n != 1 {
		t.Errorf("backend hits = %d, want 1", n)
	}
}

// TestDistinctFilterKeys verifies different filters do not share a cache entry.
func TestDistinctFilterKeys(t *testing.T) {
	var hits sync.Map
	client := newBackend(t, &hits, map[string]http.HandlerFunc{
		"GET /programs": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		},
	})
	store := NewStore(client)
	ctx := context.Background()

	if _, err := store.Programs(ctx, models.ProgramFilters{Search: "push"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Programs(ctx, models.ProgramFilters{Search: "legs"}); err != nil {
		t.Fatal(err)
	}

	if n := hitCount(&hits, "GET /programs"); n != 2 {
		t.Errorf("backend hits = %d, want 2 (one per filter)", n)
	}
}

// TestMutationInvalidatesProgramDetail verifies a session update forces the
// next program read back to the backend, while unrelated entries survive.
func TestMutationInvalidatesProgramDetail(t *testing.T) {
	var hits sync.Map
	client := newBackend(t, &hits, map[string]http.HandlerFunc{
		"GET /programs/p1": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"p1","name":"PPL","sessions":[{"id":"s1","program_id":"p1","name":"Push","exercises":[]}]}`))
		},
		"GET /programs/p2": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"p2","name":"UL","sessions":[]}`))
		},
		"PUT /programs/p1/sessions/s1": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"s1","program_id":"p1","name":"Push","exercises":[]}`))
		},
	})
	store := NewStore(client)
	ctx := context.Background()

	if _, err := store.Program(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Program(ctx, "p2"); err != nil {
		t.Fatal(err)
	}

	name := "Push Day"
	if _, err := store.UpdateSession(ctx, "p1", "s1", models.UpdateSessionData{Name: &name}); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Program(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Program(ctx, "p2"); err != nil {
		t.Fatal(err)
	}

	if n := hitCount(&hits, "GET /programs/p1"); n != 2 {
		t.Errorf("p1 hits = %d, want 2 (invalidated by session update)", n)
	}
	if n := hitCount(&hits, "GET /programs/p2"); n != 1 {
		t.Errorf("p2 hits = %d, want 1 (untouched by p1 mutation)", n)
	}
}

// TestCreateProgramInvalidatesLists verifies list queries refetch after a create.
func TestCreateProgramInvalidatesLists(t *testing.T) {
	var hits sync.Map
	client := newBackend(t, &hits, map[string]http.HandlerFunc{
		"GET /programs": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		},
		"POST /programs": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"p9","name":"New"}`))
		},
	})
	store := NewStore(client)
	ctx := context.Background()

	if _, err := store.Programs(ctx, models.ProgramFilters{}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateProgram(ctx, models.CreateProgramData{Name: "New", SplitType: models.SplitFullBody, StructureType: models.StructureWeekly}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Programs(ctx, models.ProgramFilters{}); err != nil {
		t.Fatal(err)
	}

	if n := hitCount(&hits, "GET /programs"); n != 2 {
		t.Errorf("list hits = %d, want 2", n)
	}
}

// TestFailedFetchNotCached verifies errors are not cached.
func TestFailedFetchNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	var hits sync.Map
	client := newBackend(t, &hits, map[string]http.HandlerFunc{
		"GET /programs/p1": func(w http.ResponseWriter, r *http.Request) {
			if fail.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"detail":"db down"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"p1","name":"PPL"}`))
		},
	})
	store := NewStore(client)
	ctx := context.Background()

	if _, err := store.Program(ctx, "p1"); !api.IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}

	fail.Store(false)
	p, err := store.Program(ctx, "p1")
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if p.Name != "PPL" {
		t.Errorf("name = %q, want PPL", p.Name)
	}
}
