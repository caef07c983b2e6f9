package api

import (
	"context"

	"github.com/claude/hypertroq/internal/models"
)

// CreateSession adds a session to a program.
func (c *Client) CreateSession(ctx context.Context, programID string, data models.CreateSessionData) (*models.ProgramSession, error) {
	var s models.ProgramSession
	if err := c.sendJSON(ctx, "POST", "/programs/"+programID+"/sessions", data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSession applies a partial update (name and/or exercises) to a session.
func (c *Client) UpdateSession(ctx context.Context, programID, sessionID string, data models.UpdateSessionData) (*models.ProgramSession, error) {
	var s models.ProgramSession
	if err := c.sendJSON(ctx, "PUT", "/programs/"+programID+"/sessions/"+sessionID, data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes a session from a program. The backend answers 204.
func (c *Client) DeleteSession(ctx context.Context, programID, sessionID string) error {
	return c.delete(ctx, "/programs/"+programID+"/sessions/"+sessionID)
}
