package mcp

import (
	"context"

	"github.com/claude/hypertroq/internal/models"
	"github.com/claude/hypertroq/internal/query"
)

// DataSource abstracts the read side of the program and exercise catalogs
// for MCP tools. *query.Store satisfies it, so tool calls share the
// gateway's cache and in-flight dedup.
type DataSource interface {
	Programs(ctx context.Context, f models.ProgramFilters) ([]models.ProgramListItem, error)
	Program(ctx context.Context, id string) (*models.Program, error)
	ProgramStats(ctx context.Context, id string) (*models.ProgramStats, error)
	Exercises(ctx context.Context, f models.ExerciseFilters) ([]models.Exercise, error)
	Exercise(ctx context.Context, id string) (*models.Exercise, error)
}

// Compile-time check: *query.Store satisfies DataSource.
var _ DataSource = (*query.Store)(nil)
