package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/claude/hypertroq/internal/models"
)

// ListPrograms fetches programs matching the filters. Limit defaults to 50.
func (c *Client) ListPrograms(ctx context.Context, f models.ProgramFilters) ([]models.ProgramListItem, error) {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.SplitType != "" {
		params.Set("split_type", string(f.SplitType))
	}
	if f.StructureType != "" {
		params.Set("structure_type", string(f.StructureType))
	}
	if f.IsTemplate != nil {
		params.Set("is_template", strconv.FormatBool(*f.IsTemplate))
	}
	limit := f.Limit
	if limit == 0 {
		limit = 50
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(f.Skip))

	return getList[models.ProgramListItem](ctx, c, "/programs", params)
}

// GetProgram fetches one program with its full session list.
func (c *Client) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	var p models.Program
	if err := c.getJSON(ctx, "/programs/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProgram creates a new program.
func (c *Client) CreateProgram(ctx context.Context, data models.CreateProgramData) (*models.Program, error) {
	var p models.Program
	if err := c.sendJSON(ctx, "POST", "/programs", data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProgram applies a partial update to a program.
func (c *Client) UpdateProgram(ctx context.Context, id string, data models.UpdateProgramData) (*models.Program, error) {
	var p models.Program
	if err := c.sendJSON(ctx, "PUT", "/programs/"+id, data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProgram deletes a program. The backend answers 204.
func (c *Client) DeleteProgram(ctx context.Context, id string) error {
	return c.delete(ctx, "/programs/"+id)
}

// CloneProgram copies a template program into the caller's organization.
func (c *Client) CloneProgram(ctx context.Context, templateID string, data models.CloneProgramData) (*models.Program, error) {
	var p models.Program
	if err := c.sendJSON(ctx, "POST", "/programs/"+templateID+"/clone", data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProgramStats fetches the backend-computed volume statistics.
func (c *Client) GetProgramStats(ctx context.Context, id string) (*models.ProgramStats, error) {
	var s models.ProgramStats
	if err := c.getJSON(ctx, "/programs/"+id+"/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
