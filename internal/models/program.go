package models

// SplitType is a training program's weekly muscle-group grouping strategy.
type SplitType string

const (
	SplitUpperLower   SplitType = "UPPER_LOWER"
	SplitPushPullLegs SplitType = "PUSH_PULL_LEGS"
	SplitFullBody     SplitType = "FULL_BODY"
	SplitBro          SplitType = "BRO_SPLIT"
	SplitArnold       SplitType = "ARNOLD_SPLIT"
	SplitCustom       SplitType = "CUSTOM"
)

// SplitTypes lists all split types in display order.
var SplitTypes = []SplitType{
	SplitUpperLower, SplitPushPullLegs, SplitFullBody,
	SplitBro, SplitArnold, SplitCustom,
}

// StructureType describes how a program's sessions are scheduled.
type StructureType string

const (
	StructureWeekly StructureType = "WEEKLY"
	StructureCyclic StructureType = "CYCLIC"
)

// StructureConfig holds scheduling parameters. Weekly programs use
// DaysPerWeek/SelectedDays; cyclic programs use DaysOn/DaysOff.
type StructureConfig struct {
	DaysPerWeek  int      `json:"days_per_week,omitempty"`
	SelectedDays []string `json:"selected_days,omitempty"`
	DaysOn       int      `json:"days_on,omitempty"`
	DaysOff      int      `json:"days_off,omitempty"`
}

// SessionExercise is the server-persisted shape of one exercise slot in a
// session. Only these fields ever go back to the backend on save.
type SessionExercise struct {
	ExerciseID     string `json:"exercise_id"`
	ExerciseName   string `json:"exercise_name,omitempty"`
	Sets           int    `json:"sets"`
	OrderInSession int    `json:"order_in_session"`
	Notes          string `json:"notes,omitempty"`
}

// SessionExerciseWithDetails extends the server shape with a synthetic local
// id and display-only fields. TargetReps and RPE live only in the client;
// ServerShape strips them before save.
type SessionExerciseWithDetails struct {
	SessionExercise
	ID             string    `json:"id"`
	Equipment      Equipment `json:"equipment,omitempty"`
	PrimaryMuscles []string  `json:"primary_muscles,omitempty"`
	TargetReps     string    `json:"target_reps,omitempty"`
	RPE            int       `json:"rpe,omitempty"` // 1-10, 0 means unset
}

// ServerShape returns the fields persisted remotely: exercise_id, sets,
// order_in_session, notes.
func (e SessionExerciseWithDetails) ServerShape() SessionExercise {
	return SessionExercise{
		ExerciseID:     e.ExerciseID,
		Sets:           e.Sets,
		OrderInSession: e.OrderInSession,
		Notes:          e.Notes,
	}
}

// SessionExercisePatch carries a partial update for one exercise slot.
// Nil fields are left unchanged.
type SessionExercisePatch struct {
	Sets       *int    `json:"sets,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	TargetReps *string `json:"target_reps,omitempty"`
	RPE        *int    `json:"rpe,omitempty"`
}

// Apply merges the patch into the exercise.
func (p SessionExercisePatch) Apply(e *SessionExerciseWithDetails) {
	if p.Sets != nil {
		e.Sets = *p.Sets
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.TargetReps != nil {
		e.TargetReps = *p.TargetReps
	}
	if p.RPE != nil {
		e.RPE = *p.RPE
	}
}

// ProgramSession is one scheduled workout within a program.
type ProgramSession struct {
	ID             string            `json:"id"`
	ProgramID      string            `json:"program_id"`
	Name           string            `json:"name"`
	DayNumber      int               `json:"day_number"`
	OrderInProgram int               `json:"order_in_program"`
	Exercises      []SessionExercise `json:"exercises"`
	TotalSets      int               `json:"total_sets,omitempty"`
	ExerciseCount  int               `json:"exercise_count,omitempty"`
}

// Program is a full training program including its ordered sessions.
type Program struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	SplitType       SplitType        `json:"split_type"`
	StructureType   StructureType    `json:"structure_type"`
	StructureConfig *StructureConfig `json:"structure_config,omitempty"`
	IsTemplate      bool             `json:"is_template"`
	DurationWeeks   int              `json:"duration_weeks,omitempty"`
	Sessions        []ProgramSession `json:"sessions,omitempty"`
	OrganizationID  string           `json:"organization_id,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
	UpdatedAt       string           `json:"updated_at,omitempty"`
}

// Session returns the session with the given id, or nil.
func (p *Program) Session(id string) *ProgramSession {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i]
		}
	}
	return nil
}

// ProgramListItem is the lighter program shape used in list views.
type ProgramListItem struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	SplitType     SplitType     `json:"split_type"`
	StructureType StructureType `json:"structure_type"`
	IsTemplate    bool          `json:"is_template"`
	DurationWeeks int           `json:"duration_weeks,omitempty"`
	SessionCount  int           `json:"session_count"`
	CreatedAt     string        `json:"created_at,omitempty"`
	UpdatedAt     string        `json:"updated_at,omitempty"`
}

// CreateProgramData is the create-program request body.
type CreateProgramData struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	SplitType       SplitType        `json:"split_type"`
	StructureType   StructureType    `json:"structure_type"`
	StructureConfig *StructureConfig `json:"structure_config,omitempty"`
	DurationWeeks   int              `json:"duration_weeks,omitempty"`
}

// UpdateProgramData is the partial update-program request body.
type UpdateProgramData struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty"`
}

// CloneProgramData is the clone-template request body.
type CloneProgramData struct {
	NewName string `json:"new_name,omitempty"`
}

// ProgramFilters narrows program list queries.
type ProgramFilters struct {
	Search        string
	SplitType     SplitType
	StructureType StructureType
	IsTemplate    *bool
	Skip          int
	Limit         int
}

// CreateSessionData is the create-session request body.
type CreateSessionData struct {
	Name           string            `json:"name"`
	DayNumber      int               `json:"day_number"`
	OrderInProgram int               `json:"order_in_program"`
	Exercises      []SessionExercise `json:"exercises"`
}

// UpdateSessionData is the partial update-session request body. A nil
// Exercises pointer means "leave exercises unchanged"; a pointer to an empty
// slice clears the session.
type UpdateSessionData struct {
	Name           *string            `json:"name,omitempty"`
	DayNumber      *int               `json:"day_number,omitempty"`
	OrderInProgram *int               `json:"order_in_program,omitempty"`
	Exercises      *[]SessionExercise `json:"exercises,omitempty"`
}

// VolumeStatus classifies weekly training volume for a muscle group.
type VolumeStatus string

const (
	VolumeLow       VolumeStatus = "low"
	VolumeOptimal   VolumeStatus = "optimal"
	VolumeHigh      VolumeStatus = "high"
	VolumeExcessive VolumeStatus = "excessive"
)

// MuscleVolumeStats is the backend-computed weekly volume for one muscle.
type MuscleVolumeStats struct {
	Muscle      MuscleGroup  `json:"muscle"`
	MuscleName  string       `json:"muscle_name"`
	SetsPerWeek float64      `json:"sets_per_week"`
	Status      VolumeStatus `json:"status"`
}

// ProgramStats is the backend-computed summary for a program.
type ProgramStats struct {
	TotalSessions     int                 `json:"total_sessions"`
	TotalSets         int                 `json:"total_sets"`
	AvgSetsPerSession float64             `json:"avg_sets_per_session"`
	WeeklyVolume      []MuscleVolumeStats `json:"weekly_volume"`
	TrainingFrequency float64             `json:"training_frequency"`
}
