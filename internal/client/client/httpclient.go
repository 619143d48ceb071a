package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/decipline/internal/client/models"
	"github.com/dmitrijs2005/decipline/internal/common"
	"github.com/google/uuid"
)

const maxResponseBody = 1 << 20

// HTTPClient talks to the backend's JSON-over-HTTP API.
type HTTPClient struct {
	baseURL string
	opts    *options
}

// NewHTTPClient returns a client rooted at baseURL, e.g. http://localhost:8000.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), opts: o}
}

func (c *HTTPClient) Close() error {
	c.opts.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Signup(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	var out models.AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/signup", "", creds, &out)
	return out, err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	var out models.AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *HTTPClient) Me(ctx context.Context, token string) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodGet, "/me", token, nil, &out)
	return out, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, draft models.ProfileDraft) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPut, "/me/profile", token, draft, &out)
	return out, err
}

func (c *HTTPClient) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	var out []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", token, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Task{}
	}
	return out, nil
}

// GenerateTasks discards the response body; callers refetch the list.
func (c *HTTPClient) GenerateTasks(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/tasks/generate", token, nil, nil)
}

func (c *HTTPClient) SetTaskCompleted(ctx context.Context, token string, id int64, completed bool) error {
	path := "/tasks/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodPatch, path, token, completionRequest{Completed: completed}, nil)
}

func (c *HTTPClient) Upgrade(ctx context.Context, token string) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPost, "/billing/upgrade", token, nil, &out)
	return out, err
}

func (c *HTTPClient) Advice(ctx context.Context, token string) (string, error) {
	var out adviceResponse
	if err := c.do(ctx, http.MethodGet, "/ai/advice", token, nil, &out); err != nil {
		return "", err
	}
	return out.Advice, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	ctx, cancel, err := c.opts.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerValue(token))
	}

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		c.opts.logger.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := mapHTTPError(resp.StatusCode, data)
		c.opts.logger.Debug(ctx, "request rejected", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

func mapHTTPError(status int, data []byte) error {
	var eb errorBody
	// a body that is not JSON leaves the detail empty
	_ = json.Unmarshal(data, &eb)
	return &APIError{Status: status, Detail: detailString(eb.Detail)}
}
