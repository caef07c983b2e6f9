package models

import "fmt"

// MuscleGroup is one of the 17 muscle groups tracked for hypertrophy volume.
type MuscleGroup string

const (
	Chest          MuscleGroup = "CHEST"
	FrontDelts     MuscleGroup = "FRONT_DELTS"
	SideDelts      MuscleGroup = "SIDE_DELTS"
	RearDelts      MuscleGroup = "REAR_DELTS"
	Triceps        MuscleGroup = "TRICEPS"
	Lats           MuscleGroup = "LATS"
	TrapsRhomboids MuscleGroup = "TRAPS_RHOMBOIDS"
	ElbowFlexors   MuscleGroup = "ELBOW_FLEXORS"
	Forearms       MuscleGroup = "FOREARMS"
	SpinalErectors MuscleGroup = "SPINAL_ERECTORS"
	Abs            MuscleGroup = "ABS"
	Obliques       MuscleGroup = "OBLIQUES"
	Glutes         MuscleGroup = "GLUTES"
	Quadriceps     MuscleGroup = "QUADRICEPS"
	Hamstrings     MuscleGroup = "HAMSTRINGS"
	Adductors      MuscleGroup = "ADDUCTORS"
	Calves         MuscleGroup = "CALVES"
)

// MuscleGroups lists all tracked muscle groups.
var MuscleGroups = []MuscleGroup{
	Chest, FrontDelts, SideDelts, RearDelts, Triceps, Lats,
	TrapsRhomboids, ElbowFlexors, Forearms, SpinalErectors,
	Abs, Obliques, Glutes, Quadriceps, Hamstrings, Adductors, Calves,
}

// ValidMuscleGroup reports whether m is a known muscle group.
func ValidMuscleGroup(m MuscleGroup) bool {
	for _, g := range MuscleGroups {
		if g == m {
			return true
		}
	}
	return false
}

// Equipment is the gear an exercise is performed with.
type Equipment string

const (
	Barbell        Equipment = "BARBELL"
	Dumbbell       Equipment = "DUMBBELL"
	Cable          Equipment = "CABLE"
	Machine        Equipment = "MACHINE"
	SmithMachine   Equipment = "SMITH_MACHINE"
	Bodyweight     Equipment = "BODYWEIGHT"
	Kettlebell     Equipment = "KETTLEBELL"
	ResistanceBand Equipment = "RESISTANCE_BAND"
	OtherEquipment Equipment = "OTHER"
)

// DifficultyLevel grades how advanced an exercise is.
type DifficultyLevel string

const (
	Beginner     DifficultyLevel = "BEGINNER"
	Intermediate DifficultyLevel = "INTERMEDIATE"
	Advanced     DifficultyLevel = "ADVANCED"
)

// ForceType is the movement pattern of an exercise.
type ForceType string

const (
	Push       ForceType = "PUSH"
	Pull       ForceType = "PULL"
	StaticHold ForceType = "STATIC"
)

// volumeContributions are the allowed per-muscle training-credit fractions.
var volumeContributions = []float64{0.25, 0.5, 0.75, 1.0}

// MuscleContribution is the fraction of training credit an exercise gives
// to one muscle group.
type MuscleContribution struct {
	Muscle                 MuscleGroup `json:"muscle"`
	MuscleName             string      `json:"muscle_name,omitempty"`
	Contribution           float64     `json:"contribution"`
	ContributionPercentage float64     `json:"contribution_percentage,omitempty"`
	ContributionLabel      string      `json:"contribution_label,omitempty"`
}

// Exercise is a movement in the exercise library.
type Exercise struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Equipment           Equipment            `json:"equipment"`
	EquipmentName       string               `json:"equipment_name,omitempty"`
	ImageURL            string               `json:"image_url,omitempty"`
	VideoURL            string               `json:"video_url,omitempty"`
	DifficultyLevel     DifficultyLevel      `json:"difficulty_level,omitempty"`
	ForceType           ForceType            `json:"force_type,omitempty"`
	IsGlobal            bool                 `json:"is_global"`
	CreatedByUserID     string               `json:"created_by_user_id,omitempty"`
	OrganizationID      string               `json:"organization_id,omitempty"`
	MuscleContributions []MuscleContribution `json:"muscle_contributions"`
	IsCompound          bool                 `json:"is_compound,omitempty"`
	CreatedAt           string               `json:"created_at,omitempty"`
	UpdatedAt           string               `json:"updated_at,omitempty"`
}

// PrimaryMuscles returns the muscles with full (1.0) contribution.
func (e *Exercise) PrimaryMuscles() []string {
	var out []string
	for _, mc := range e.MuscleContributions {
		if mc.Contribution == 1.0 {
			out = append(out, string(mc.Muscle))
		}
	}
	return out
}

// ValidateContributions checks every contribution is one of the allowed
// fractions, every muscle is known, and exactly one muscle carries the
// primary (1.0) contribution.
func ValidateContributions(contributions []MuscleContribution) error {
	if len(contributions) == 0 {
		return fmt.Errorf("at least one muscle contribution is required")
	}

	primaries := 0
	seen := map[MuscleGroup]bool{}
	for _, mc := range contributions {
		if !ValidMuscleGroup(mc.Muscle) {
			return fmt.Errorf("unknown muscle group %q", mc.Muscle)
		}
		if seen[mc.Muscle] {
			return fmt.Errorf("duplicate muscle group %q", mc.Muscle)
		}
		seen[mc.Muscle] = true

		valid := false
		for _, v := range volumeContributions {
			if mc.Contribution == v {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("contribution %v for %s is not one of 0.25, 0.5, 0.75, 1.0", mc.Contribution, mc.Muscle)
		}
		if mc.Contribution == 1.0 {
			primaries++
		}
	}

	if primaries != 1 {
		return fmt.Errorf("exactly one primary muscle (contribution 1.0) is required, found %d", primaries)
	}
	return nil
}

// CreateExerciseData is the create-exercise request body.
type CreateExerciseData struct {
	Name                string               `json:"name"`
	Description         string               `json:"description,omitempty"`
	Equipment           Equipment            `json:"equipment"`
	MuscleContributions []MuscleContribution `json:"muscle_contributions"`
	ImageURL            string               `json:"image_url,omitempty"`
	VideoURL            string               `json:"video_url,omitempty"`
	DifficultyLevel     DifficultyLevel      `json:"difficulty_level,omitempty"`
	ForceType           ForceType            `json:"force_type,omitempty"`
}

// UpdateExerciseData is the partial update-exercise request body.
type UpdateExerciseData struct {
	Name                *string              `json:"name,omitempty"`
	Description         *string              `json:"description,omitempty"`
	Equipment           *Equipment           `json:"equipment,omitempty"`
	MuscleContributions []MuscleContribution `json:"muscle_contributions,omitempty"`
	ImageURL            *string              `json:"image_url,omitempty"`
	VideoURL            *string              `json:"video_url,omitempty"`
}

// ExerciseFilters narrows exercise list queries.
type ExerciseFilters struct {
	MuscleGroup MuscleGroup
	Search      string
	Skip        int
	Limit       int
}
