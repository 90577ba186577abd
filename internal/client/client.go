// Package client is a typed HTTP client for the TaskFlow API.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"taskflow/internal/analytics"
	"taskflow/internal/models"
)

const DefaultBaseURL = "http://localhost:5000"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("taskflow api: status %d", e.Status)
	}
	return fmt.Sprintf("taskflow api: %d %s", e.Status, e.Message)
}

// IsNotFound reports a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsDuplicate reports a duplicate email or loginId.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == string(models.ErrCodeDuplicate)
}

type Client struct {
	rest *resty.Client
}

type Option func(*resty.Client)

// WithHTTPClient swaps the transport, e.g. an httptest server client.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *resty.Client) {
		r.SetTransport(hc.Transport)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(r *resty.Client) { r.SetTimeout(d) }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	for _, opt := range opts {
		opt(r)
	}
	return &Client{rest: r}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.rest.R().
		SetContext(ctx).
		SetError(&APIError{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr, _ := resp.Error().(*APIError)
		if apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(resp.String())
		}
		return apiErr
	}
	return nil
}

// ===== tasks

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) ToggleTask(ctx context.Context, id string) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+id+"/toggle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LogFocusTime(ctx context.Context, id string, seconds int64) (*models.Task, error) {
	var out models.Task
	body := map[string]int64{"seconds": seconds}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/"+id+"/focus", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCompleted(ctx context.Context) (int64, error) {
	var out struct {
		Deleted int64 `json:"deleted"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks/clear-completed", nil, &out)
	return out.Deleted, err
}

// ===== users

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/api/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, nil, nil)
}

func (c *Client) Login(ctx context.Context, loginID, password string) (*models.User, error) {
	var out models.User
	req := models.LoginRequest{LoginID: loginID, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ===== activities

func (c *Client) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	err := c.do(ctx, http.MethodGet, "/api/activities", nil, &out)
	return out, err
}

func (c *Client) CreateActivity(ctx context.Context, in models.ActivityInput) (*models.Activity, error) {
	var out models.Activity
	if err := c.do(ctx, http.MethodPost, "/api/activities", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearActivities(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/activities", nil, nil)
}

// ===== misc

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *Client) Dashboard(ctx context.Context, days int) (*analytics.Dashboard, error) {
	var out analytics.Dashboard
	path := fmt.Sprintf("/api/analytics/summary?days=%d", days)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadReport streams the PDF report into w.
func (c *Client) DownloadReport(ctx context.Context, w io.Writer) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get("/api/analytics/report.pdf")
	if err != nil {
		return err
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.StatusCode() >= 300 {
		msg, _ := io.ReadAll(body)
		return &APIError{Status: resp.StatusCode(), Message: strings.TrimSpace(string(msg))}
	}
	_, err = io.Copy(w, body)
	return err
}
