package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/hypertroq/internal/models"
)

// --- Tool definitions ---

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List training programs. Returns program summaries with split type, structure type, and session count."),
	mcp.WithString("search", mcp.Description("Filter by name (partial match)")),
	mcp.WithString("split_type", mcp.Description("Filter by split type"), mcp.Enum("UPPER_LOWER", "PUSH_PULL_LEGS", "FULL_BODY", "BRO_SPLIT", "ARNOLD_SPLIT", "CUSTOM")),
	mcp.WithBoolean("templates_only", mcp.Description("Only return template programs")),
)

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Get one training program with its full session list and per-session exercises."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Program ID")),
)

var toolGetProgramStats = mcp.NewTool("get_program_stats",
	mcp.WithDescription("Get computed stats for a program: total sets, weekly volume per muscle group with low/optimal/high/excessive status, and training frequency."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Program ID")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List exercises from the library with optional name search."),
	mcp.WithString("search", mcp.Description("Filter by name (partial match, e.g. 'bench press')")),
)

var toolGetExercise = mcp.NewTool("get_exercise",
	mcp.WithDescription("Get one exercise with equipment, difficulty, and per-muscle volume contributions."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exercise ID")),
)

var toolFindExercisesForMuscle = mcp.NewTool("find_exercises_for_muscle",
	mcp.WithDescription("Find exercises that train a muscle group, split into primary movers (full volume credit) and secondary (fractional credit)."),
	mcp.WithString("muscle", mcp.Required(), mcp.Description("Muscle group (e.g. CHEST, LATS, QUADRICEPS)")),
)

// --- Tool handlers ---

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := models.ProgramFilters{
		Search:    req.GetString("search", ""),
		SplitType: models.SplitType(req.GetString("split_type", "")),
	}
	if req.GetBool("templates_only", false) {
		tmpl := true
		f.IsTemplate = &tmpl
	}

	programs, err := h.ds.Programs(ctx, f)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(programs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	program, err := h.ds.Program(ctx, id)
	if err != nil {
		h.log.Error("mcp get_program", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(program)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgramStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	stats, err := h.ds.ProgramStats(ctx, id)
	if err != nil {
		h.log.Error("mcp get_program_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.Exercises(ctx, models.ExerciseFilters{
		Search: req.GetString("search", ""),
	})
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	exercise, err := h.ds.Exercise(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercise)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// muscleMatches groups the library by how much volume credit an exercise
// gives the asked muscle.
type muscleMatches struct {
	Muscle    models.MuscleGroup `json:"muscle"`
	Primary   []models.Exercise  `json:"primary"`
	Secondary []models.Exercise  `json:"secondary"`
}

func (h *handlers) findExercisesForMuscle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	muscleStr, err := req.RequireString("muscle")
	if err != nil {
		return mcp.NewToolResultError("muscle parameter is required"), nil
	}
	muscle := models.MuscleGroup(muscleStr)
	if !models.ValidMuscleGroup(muscle) {
		return mcp.NewToolResultError("unknown muscle group: " + muscleStr), nil
	}

	exercises, err := h.ds.Exercises(ctx, models.ExerciseFilters{MuscleGroup: muscle})
	if err != nil {
		h.log.Error("mcp find_exercises_for_muscle", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	matches := muscleMatches{Muscle: muscle}
	for _, ex := range exercises {
		for _, mc := range ex.MuscleContributions {
			if mc.Muscle != muscle {
				continue
			}
			if mc.Contribution == 1.0 {
				matches.Primary = append(matches.Primary, ex)
			} else {
				matches.Secondary = append(matches.Secondary, ex)
			}
			break
		}
	}

	result, err := mcp.NewToolResultJSON(matches)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
