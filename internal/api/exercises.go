package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/claude/hypertroq/internal/models"
)

// ListExercises fetches exercises matching the filters. Limit defaults to 100.
func (c *Client) ListExercises(ctx context.Context, f models.ExerciseFilters) ([]models.Exercise, error) {
	params := url.Values{}
	if f.MuscleGroup != "" {
		params.Set("muscle_group", string(f.MuscleGroup))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	limit := f.Limit
	if limit == 0 {
		limit = 100
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(f.Skip))

	return getList[models.Exercise](ctx, c, "/exercises", params)
}

// GetExercise fetches one exercise.
func (c *Client) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	var e models.Exercise
	if err := c.getJSON(ctx, "/exercises/"+id, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateExercise creates a new exercise.
func (c *Client) CreateExercise(ctx context.Context, data models.CreateExerciseData) (*models.Exercise, error) {
	var e models.Exercise
	if err := c.sendJSON(ctx, "POST", "/exercises", data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExercise applies a partial update to an exercise.
func (c *Client) UpdateExercise(ctx context.Context, id string, data models.UpdateExerciseData) (*models.Exercise, error) {
	var e models.Exercise
	if err := c.sendJSON(ctx, "PUT", "/exercises/"+id, data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExercise deletes an exercise. The backend answers 204.
func (c *Client) DeleteExercise(ctx context.Context, id string) error {
	return c.delete(ctx, "/exercises/"+id)
}
