package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/claude/hypertroq/internal/models"
)

// UploadAvatar sends a profile image as a multipart form body and returns
// the updated profile.
func (c *Client) UploadAvatar(ctx context.Context, filename string, r io.Reader) (*models.User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("api: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("api: copy avatar: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("api: finalize form: %w", err)
	}

	var u models.User
	if err := c.do(ctx, "POST", "/users/me/avatar", nil, &buf, mw.FormDataContentType(), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FetchUpload streams an uploaded static asset (e.g. an exercise image or
// avatar) from the backend. The caller must close the returned body. Used by
// the gateway's same-origin proxy.
func (c *Client) FetchUpload(ctx context.Context, path string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/uploads/"+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("api: create request: %w", err)
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("api: fetch upload %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, "", decodeError(resp.StatusCode, body)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
