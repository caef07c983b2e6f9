package overlay

import "github.com/claude/hypertroq/internal/models"

// Reorder returns a copy of list with the element at from moved to to, and
// OrderInSession renumbered to 1..N. Out-of-range indexes leave the element
// order alone, but the result is renumbered either way. The input is never
// mutated.
func Reorder(list []models.SessionExerciseWithDetails, from, to int) []models.SessionExerciseWithDetails {
	out := make([]models.SessionExerciseWithDetails, len(list))
	copy(out, list)

	if from >= 0 && from < len(out) && to >= 0 && to < len(out) && from != to {
		moved := out[from]
		out = append(out[:from], out[from+1:]...)
		out = append(out[:to], append([]models.SessionExerciseWithDetails{moved}, out[to:]...)...)
	}

	renumber(out)
	return out
}

// renumber sets OrderInSession to 1..N in place.
func renumber(list []models.SessionExerciseWithDetails) {
	for i := range list {
		list[i].OrderInSession = i + 1
	}
}
