package overlay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/claude/hypertroq/internal/models"
)

func serverSession(exerciseIDs ...string) *models.ProgramSession {
	s := &models.ProgramSession{ID: "s1", ProgramID: "p1", Name: "Push"}
	for i, id := range exerciseIDs {
		s.Exercises = append(s.Exercises, models.SessionExercise{
			ExerciseID:     id,
			ExerciseName:   "Exercise " + id,
			Sets:           3,
			OrderInSession: i + 1,
		})
	}
	return s
}

func orders(list []models.SessionExerciseWithDetails) []int {
	out := make([]int, len(list))
	for i, ex := range list {
		out[i] = ex.OrderInSession
	}
	return out
}

func exerciseIDs(list []models.SessionExerciseWithDetails) []string {
	out := make([]string, len(list))
	for i, ex := range list {
		out[i] = ex.ExerciseID
	}
	return out
}

// assertContiguous checks order_in_session is exactly 1..N.
func assertContiguous(t *testing.T, list []models.SessionExerciseWithDetails) {
	t.Helper()
	for i, ex := range list {
		if ex.OrderInSession != i+1 {
			t.Errorf("order_in_session[%d] = %d, want %d (full: %v)", i, ex.OrderInSession, i+1, orders(list))
			return
		}
	}
}

// TestResolvePristine verifies resolve before any mutation mirrors server
// content and order, with synthetic ids and empty client-only fields.
func TestResolvePristine(t *testing.T) {
	st := NewStore()
	server := serverSession("a", "b")

	got := st.Resolve("s1", server)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !reflect.DeepEqual(exerciseIDs(got), []string{"a", "b"}) {
		t.Errorf("exercise ids = %v, want [a b]", exerciseIDs(got))
	}
	if got[0].ID != "a-0" || got[1].ID != "b-1" {
		t.Errorf("synthetic ids = [%s %s], want [a-0 b-1]", got[0].ID, got[1].ID)
	}
	if got[0].TargetReps != "" || got[0].RPE != 0 {
		t.Errorf("client-only fields should be empty, got reps=%q rpe=%d", got[0].TargetReps, got[0].RPE)
	}
	if st.IsDirty("s1") {
		t.Error("resolve must not mark the session dirty")
	}
}

// TestResolveNilSessionID verifies an empty session id resolves to nothing.
func TestResolveNilSessionID(t *testing.T) {
	st := NewStore()
	if got := st.Resolve("", serverSession("a")); got != nil {
		t.Errorf("Resolve(\"\") = %v, want nil", got)
	}
}

// TestAddExerciseDefaults verifies adding to an empty session appends slots
// with editing defaults and sequential order.
func TestAddExerciseDefaults(t *testing.T) {
	st := NewStore()
	server := serverSession()

	st.AddExercise("s1", server, &models.Exercise{ID: "x", Name: "Squat", Equipment: models.Barbell})
	st.AddExercise("s1", server, &models.Exercise{ID: "y", Name: "Leg Press"})

	got := st.Resolve("s1", server)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !reflect.DeepEqual(orders(got), []int{1, 2}) {
		t.Errorf("orders = %v, want [1 2]", orders(got))
	}
	first := got[0]
	if first.Sets != DefaultSets || first.TargetReps != DefaultTargetReps || first.RPE != DefaultRPE {
		t.Errorf("defaults = sets %d reps %q rpe %d", first.Sets, first.TargetReps, first.RPE)
	}
	if first.ID == "" || first.ID == got[1].ID {
		t.Errorf("local ids must be unique and non-empty, got %q and %q", first.ID, got[1].ID)
	}
	if !st.IsDirty("s1") {
		t.Error("add must mark the session dirty")
	}
}

// TestAddExerciseEmptySessionID verifies the documented silent no-op.
func TestAddExerciseEmptySessionID(t *testing.T) {
	st := NewStore()
	st.AddExercise("", serverSession(), &models.Exercise{ID: "x"})
	if st.IsDirty("") {
		t.Error("empty session id must be a no-op")
	}
}

// TestUpdateExercise verifies field merge, and no-op for unknown ids.
func TestUpdateExercise(t *testing.T) {
	st := NewStore()
	server := serverSession("a", "b")

	sets := 5
	if !st.UpdateExercise("s1", server, "a-0", models.SessionExercisePatch{Sets: &sets}) {
		t.Fatal("update of existing slot returned false")
	}
	got := st.Resolve("s1", server)
	if got[0].Sets != 5 {
		t.Errorf("sets = %d, want 5", got[0].Sets)
	}
	if got[0].ExerciseName != "Exercise a" {
		t.Errorf("unpatched field changed: %q", got[0].ExerciseName)
	}
	if !st.IsDirty("s1") {
		t.Error("update must mark the session dirty")
	}

	if st.UpdateExercise("s1", server, "no-such-id", models.SessionExercisePatch{Sets: &sets}) {
		t.Error("update of unknown slot must be a no-op returning false")
	}
}

// TestNoOpMutationDoesNotSeed verifies a not-found update or remove leaves
// no overlay entry behind, so later server changes still show in Resolve.
func TestNoOpMutationDoesNotSeed(t *testing.T) {
	st := NewStore()
	server := serverSession("a")

	sets := 5
	if st.UpdateExercise("s1", server, "no-such-id", models.SessionExercisePatch{Sets: &sets}) {
		t.Fatal("update of unknown slot returned true")
	}
	if st.RemoveExercise("s1", server, "no-such-id") {
		t.Fatal("remove of unknown slot returned true")
	}
	if st.IsDirty("s1") {
		t.Fatal("no-op mutation marked the session dirty")
	}

	// The server gains an exercise; a pristine session must show it.
	refreshed := serverSession("a", "b")
	got := st.Resolve("s1", refreshed)
	if !reflect.DeepEqual(exerciseIDs(got), []string{"a", "b"}) {
		t.Errorf("resolve after no-op = %v, want refreshed server truth [a b]", exerciseIDs(got))
	}
}

// TestRemoveExerciseRenumbers starts from [A(1), B(2)], removes B, and
// expects [A(1)] with the session dirty.
func TestRemoveExerciseRenumbers(t *testing.T) {
	st := NewStore()
	server := serverSession("A", "B")

	if !st.RemoveExercise("s1", server, "B-1") {
		t.Fatal("remove returned false")
	}
	got := st.Resolve("s1", server)
	if len(got) != 1 || got[0].ExerciseID != "A" {
		t.Fatalf("list = %v, want [A]", exerciseIDs(got))
	}
	if got[0].OrderInSession != 1 {
		t.Errorf("order = %d, want 1", got[0].OrderInSession)
	}
	if !st.IsDirty("s1") {
		t.Error("remove must mark the session dirty")
	}
}

// TestRemoveMiddleRenumbers verifies no gaps after removing from the middle.
func TestRemoveMiddleRenumbers(t *testing.T) {
	st := NewStore()
	server := serverSession("a", "b", "c")

	st.RemoveExercise("s1", server, "b-1")
	got := st.Resolve("s1", server)
	if !reflect.DeepEqual(exerciseIDs(got), []string{"a", "c"}) {
		t.Fatalf("ids = %v, want [a c]", exerciseIDs(got))
	}
	assertContiguous(t, got)
}

// TestReorderExercises reorders [A,B] to [B,A] and expects immediate
// renumbering plus the dirty flag.
func TestReorderExercises(t *testing.T) {
	st := NewStore()
	server := serverSession("A", "B")

	resolved := st.Resolve("s1", server)
	st.ReorderExercises("s1", []models.SessionExerciseWithDetails{resolved[1], resolved[0]})

	got := st.Resolve("s1", server)
	if !reflect.DeepEqual(exerciseIDs(got), []string{"B", "A"}) {
		t.Fatalf("ids = %v, want [B A]", exerciseIDs(got))
	}
	if !reflect.DeepEqual(orders(got), []int{1, 2}) {
		t.Errorf("orders = %v, want [1 2]", orders(got))
	}
	if !st.IsDirty("s1") {
		t.Error("reorder must mark the session dirty")
	}
}

// TestOrderInvariantUnderMixedOps runs a sequence of adds, removes and
// reorders and checks order_in_session stays exactly 1..N throughout.
func TestOrderInvariantUnderMixedOps(t *testing.T) {
	st := NewStore()
	server := serverSession("a", "b", "c")

	check := func(step string) {
		t.Helper()
		got := st.Resolve("s1", server)
		assertContiguous(t, got)
		if t.Failed() {
			t.Fatalf("invariant broken after %s", step)
		}
	}

	st.AddExercise("s1", server, &models.Exercise{ID: "d", Name: "Dip"})
	check("add d")

	st.RemoveExercise("s1", server, "b-1")
	check("remove b")

	resolved := st.Resolve("s1", server)
	st.ReorderExercises("s1", Reorder(resolved, 0, len(resolved)-1))
	check("reorder first to last")

	st.AddExercise("s1", server, &models.Exercise{ID: "e", Name: "Fly"})
	check("add e")

	st.RemoveExercise("s1", server, st.Resolve("s1", server)[0].ID)
	check("remove head")
}

// TestCommitClears verifies commit resets dirty and resolve falls back to
// (refreshed) server truth.
func TestCommitClears(t *testing.T) {
	st := NewStore()
	server := serverSession("a")

	st.AddExercise("s1", server, &models.Exercise{ID: "x", Name: "Squat"})
	if err := st.BeginSave("s1"); err != nil {
		t.Fatal(err)
	}
	st.Commit("s1")

	if st.IsDirty("s1") {
		t.Error("dirty after commit")
	}
	// Server echoes the save: two exercises now.
	refreshed := serverSession("a", "x")
	got := st.Resolve("s1", refreshed)
	if !reflect.DeepEqual(exerciseIDs(got), []string{"a", "x"}) {
		t.Errorf("resolve after commit = %v, want server truth [a x]", exerciseIDs(got))
	}
}

// TestFailedSaveRetainsOverlay verifies a failed save leaves the overlay
// list and dirty flag exactly as before.
func TestFailedSaveRetainsOverlay(t *testing.T) {
	st := NewStore()
	server := serverSession("a")

	st.AddExercise("s1", server, &models.Exercise{ID: "x", Name: "Squat"})
	before := st.Resolve("s1", server)

	if err := st.BeginSave("s1"); err != nil {
		t.Fatal(err)
	}
	st.RollbackSave("s1")

	if !st.IsDirty("s1") {
		t.Error("dirty flag lost after failed save")
	}
	after := st.Resolve("s1", server)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("overlay changed across failed save:\nbefore %v\nafter  %v", before, after)
	}
	// Retry is possible.
	if err := st.BeginSave("s1"); err != nil {
		t.Errorf("retry BeginSave failed: %v", err)
	}
}

// TestBeginSaveSingleFlight verifies only one save per session may run at a
// time, while other sessions save independently.
func TestBeginSaveSingleFlight(t *testing.T) {
	st := NewStore()
	s1 := serverSession("a")
	s2 := &models.ProgramSession{ID: "s2", ProgramID: "p1", Name: "Pull"}

	st.AddExercise("s1", s1, &models.Exercise{ID: "x", Name: "Squat"})
	st.AddExercise("s2", s2, &models.Exercise{ID: "y", Name: "Row"})

	if err := st.BeginSave("s1"); err != nil {
		t.Fatal(err)
	}
	if err := st.BeginSave("s1"); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("second BeginSave = %v, want ErrSaveInFlight", err)
	}
	if st.State("s1") != StateSaving {
		t.Errorf("state = %s, want saving", st.State("s1"))
	}

	// The other session is unaffected.
	if err := st.BeginSave("s2"); err != nil {
		t.Errorf("BeginSave on independent session = %v", err)
	}

	// A rollback releases the slot for a retry.
	st.RollbackSave("s1")
	if err := st.BeginSave("s1"); err != nil {
		t.Errorf("BeginSave after rollback = %v", err)
	}
}

// TestDiscardDropsEntry verifies discard removes the entry so a later
// resolve never resurrects stale exercises.
func TestDiscardDropsEntry(t *testing.T) {
	st := NewStore()
	server := serverSession("a")

	st.AddExercise("s1", server, &models.Exercise{ID: "x", Name: "Squat"})
	st.Discard("s1")

	if st.IsDirty("s1") {
		t.Error("dirty after discard")
	}
	// Session was deleted: no server truth either.
	if got := st.Resolve("s1", nil); len(got) != 0 {
		t.Errorf("resolve after discard = %v, want empty", got)
	}
}

// TestIndependentSessions verifies switching sessions never clears another
// session's pending edits.
func TestIndependentSessions(t *testing.T) {
	st := NewStore()
	s1 := serverSession("a")
	s2 := &models.ProgramSession{ID: "s2", ProgramID: "p1", Name: "Pull"}

	st.AddExercise("s1", s1, &models.Exercise{ID: "x", Name: "Squat"})
	st.AddExercise("s2", s2, &models.Exercise{ID: "y", Name: "Row"})

	st.Commit("s1")

	if st.IsDirty("s1") {
		t.Error("s1 dirty after its commit")
	}
	if !st.IsDirty("s2") {
		t.Error("s2 edits lost by s1 commit")
	}
	if got := st.Resolve("s2", s2); len(got) != 1 || got[0].ExerciseID != "y" {
		t.Errorf("s2 overlay = %v, want [y]", exerciseIDs(got))
	}
}

// TestServerShapeStripsClientFields verifies the save payload carries only
// persisted fields.
func TestServerShapeStripsClientFields(t *testing.T) {
	st := NewStore()
	server := serverSession()
	st.AddExercise("s1", server, &models.Exercise{ID: "x", Name: "Squat", Equipment: models.Barbell})

	shape := st.ServerShape("s1", server)
	if len(shape) != 1 {
		t.Fatalf("len = %d, want 1", len(shape))
	}
	want := models.SessionExercise{ExerciseID: "x", Sets: DefaultSets, OrderInSession: 1}
	if shape[0] != want {
		t.Errorf("shape = %+v, want %+v", shape[0], want)
	}
}
