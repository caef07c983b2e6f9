package query

import (
	"fmt"

	"github.com/claude/hypertroq/internal/models"
)

// Key identifies one cached read. Keys form a prefix tree so mutations can
// invalidate whole families (all program lists, one program's detail).
type Key string

const (
	prefixProgramLists  = "programs/list/"
	prefixExerciseLists = "exercises/list/"
)

func keyProgramList(f models.ProgramFilters) Key {
	tmpl := "any"
	if f.IsTemplate != nil {
		tmpl = fmt.Sprintf("%v", *f.IsTemplate)
	}
	return Key(fmt.Sprintf("%ssearch=%s&split=%s&structure=%s&template=%s&skip=%d&limit=%d",
		prefixProgramLists, f.Search, f.SplitType, f.StructureType, tmpl, f.Skip, f.Limit))
}

func keyProgramDetail(id string) Key {
	return Key("programs/detail/" + id)
}

func keyProgramStats(id string) Key {
	return Key("programs/stats/" + id)
}

func keyExerciseList(f models.ExerciseFilters) Key {
	return Key(fmt.Sprintf("%smuscle=%s&search=%s&skip=%d&limit=%d",
		prefixExerciseLists, f.MuscleGroup, f.Search, f.Skip, f.Limit))
}

func keyExerciseDetail(id string) Key {
	return Key("exercises/detail/" + id)
}
