package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/app"
	"taskflow/internal/models"
	"taskflow/internal/repositories"
	"taskflow/internal/services"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := app.NewRouter(repositories.OpenMemory(), app.Deps{
		Auth: services.NewAuthServiceWithCost(bcrypt.MinCost),
	}, nil)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithHTTPClient(srv.Client()))
}

func TestClientTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	if err := c.Health(ctx); err != nil {
		t.Fatalf("Health: %v", err)
	}

	assignee := "Ann"
	created, err := c.CreateTask(ctx, models.TaskInput{Title: "Draft", Assignee: &assignee})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := c.UpdateTask(ctx, created.ID, models.TaskPatch{Assignee: models.Null[string]()})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Assignee != nil {
		t.Errorf("assignee = %q, want cleared", *updated.Assignee)
	}

	toggled, err := c.ToggleTask(ctx, created.ID)
	if err != nil || !toggled.Completed {
		t.Fatalf("ToggleTask = %+v, %v", toggled, err)
	}
	focused, err := c.LogFocusTime(ctx, created.ID, 120)
	if err != nil || focused.FocusTime != 120 {
		t.Fatalf("LogFocusTime = %+v, %v", focused, err)
	}
	n, err := c.ClearCompleted(ctx)
	if err != nil || n != 1 {
		t.Fatalf("ClearCompleted = %d, %v", n, err)
	}

	tasks, err := c.ListTasks(ctx)
	if err != nil || len(tasks) != 0 {
		t.Fatalf("ListTasks = %d, %v", len(tasks), err)
	}
	acts, err := c.ListActivities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(acts) != 5 || acts[0].Action != models.ActionCleared {
		t.Errorf("activities = %+v", acts)
	}
	if err := c.ClearActivities(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	err := c.DeleteTask(ctx, "missing")
	if !IsNotFound(err) {
		t.Fatalf("DeleteTask(missing) err = %v, want not found", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Task not found" || apiErr.Code != "NOT_FOUND" {
		t.Errorf("api error = %+v", apiErr)
	}

	in := models.UserInput{Name: "Ann", Email: "ann@example.com", LoginID: "ann", Password: "pw"}
	if _, err := c.CreateUser(ctx, in); err != nil {
		t.Fatal(err)
	}
	in.Email = "other@example.com"
	_, err = c.CreateUser(ctx, in)
	if !IsDuplicate(err) || IsNotFound(err) {
		t.Errorf("duplicate loginId err = %v", err)
	}

	if _, err := c.Login(ctx, "ann", "wrong"); !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Errorf("bad login err = %v", err)
	}
	u, err := c.Login(ctx, "ann", "pw")
	if err != nil || u.LoginID != "ann" {
		t.Fatalf("Login = %+v, %v", u, err)
	}
}

func TestClientUsersAndReports(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	u, err := c.CreateUser(ctx, models.UserInput{Name: "Bo", Email: "bo@example.com", LoginID: "bo", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	role := "Lead"
	if got, err := c.UpdateUser(ctx, u.ID, models.UserPatch{Role: &role}); err != nil || got.Role != "Lead" {
		t.Fatalf("UpdateUser = %+v, %v", got, err)
	}
	users, err := c.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("ListUsers = %d, %v", len(users), err)
	}
	if err := c.DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := c.CreateActivity(ctx, models.ActivityInput{Action: "created", TaskTitle: "x"}); err != nil {
		t.Fatal(err)
	}
	dash, err := c.Dashboard(ctx, 14)
	if err != nil || len(dash.Trend) != 14 {
		t.Fatalf("Dashboard trend = %v, %v", dash, err)
	}

	var buf bytes.Buffer
	if err := c.DownloadReport(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("report is not a PDF")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 500}
	if err.Error() != "taskflow api: status 500" {
		t.Errorf("Error() = %q", err.Error())
	}
}
