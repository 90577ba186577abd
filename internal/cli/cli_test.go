package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/app"
	"taskflow/internal/client"
	"taskflow/internal/repositories"
	"taskflow/internal/services"
	"taskflow/internal/settings"
)

type harness struct {
	t        *testing.T
	server   string
	settings string
	api      *client.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(app.NewRouter(repositories.OpenMemory(), app.Deps{
		Auth: services.NewAuthServiceWithCost(bcrypt.MinCost),
	}, nil))
	t.Cleanup(srv.Close)
	t.Setenv("TASKFLOW_SERVER", "")
	return &harness{
		t:        t,
		server:   srv.URL,
		settings: filepath.Join(t.TempDir(), "settings.yaml"),
		api:      client.New(srv.URL),
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", h.server, "--settings", h.settings}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("taskflow %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestHealthCommand(t *testing.T) {
	h := newHarness(t)
	if out := h.mustRun("health"); !strings.Contains(out, "Server is running") {
		t.Errorf("health output = %q", out)
	}
}

func TestTaskCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("tasks", "add", "Write", "docs", "--priority", "High", "--due", "2030-01-15")
	if !strings.Contains(out, "Task added successfully") || !strings.Contains(out, "Write docs") {
		t.Fatalf("add output = %q", out)
	}
	tasks, err := h.api.ListTasks(context.Background())
	if err != nil || len(tasks) != 1 {
		t.Fatalf("server tasks = %+v, %v", tasks, err)
	}
	id := tasks[0].ID
	if tasks[0].DueDate == nil || tasks[0].DueDate.Format("2006-01-02") != "2030-01-15" {
		t.Errorf("due = %v", tasks[0].DueDate)
	}

	h.mustRun("tasks", "subtask", "add", id[:8], "outline")
	if out := h.mustRun("tasks", "show", id); !strings.Contains(out, "outline") || !strings.Contains(out, "High") {
		t.Errorf("show output = %q", out)
	}

	h.mustRun("tasks", "update", id, "--assignee", "Ann", "--title", "Write more docs")
	h.mustRun("tasks", "update", id, "--due", "none")
	got, _ := h.api.ListTasks(context.Background())
	if got[0].Title != "Write more docs" || got[0].DueDate != nil || got[0].Assignee == nil {
		t.Errorf("after update = %+v", got[0])
	}

	if out := h.mustRun("tasks", "done", id[:8]); !strings.Contains(out, "Completed: Write more docs") {
		t.Errorf("done output = %q", out)
	}
	if out := h.mustRun("tasks", "list", "--open"); !strings.Contains(out, "No tasks found.") {
		t.Errorf("list --open output = %q", out)
	}
	if out := h.mustRun("tasks", "clear-completed"); !strings.Contains(out, "Cleared 1 completed tasks") {
		t.Errorf("clear output = %q", out)
	}
	if out := h.mustRun("tasks", "clear-completed"); !strings.Contains(out, "No completed tasks to clear.") {
		t.Errorf("second clear output = %q", out)
	}

	if _, err := h.run("tasks", "done", "does-not-exist"); err == nil {
		t.Error("unknown task id accepted")
	}

	acts, _ := h.api.ListActivities(context.Background())
	if len(acts) == 0 {
		t.Fatal("no activity recorded")
	}
	if out := h.mustRun("activity", "clear", "--yes"); !strings.Contains(out, "Activity history cleared") {
		t.Errorf("activity clear output = %q", out)
	}
	if out := h.mustRun("activity", "list"); !strings.Contains(out, "No activity yet.") {
		t.Errorf("activity list output = %q", out)
	}
}

func TestTeamAndLogin(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("team", "invite", "Ann", "Lee", "--email", "ann@example.com", "--login-id", "ann", "--password", "pw")
	if !strings.Contains(out, "Invitation sent to ann@example.com") {
		t.Fatalf("invite output = %q", out)
	}

	_, err := h.run("team", "invite", "Someone", "--email", "ann@example.com", "--login-id", "ann2", "--password", "pw")
	if err == nil || !strings.Contains(err.Error(), "already in the team") {
		t.Errorf("duplicate invite err = %v", err)
	}

	if out := h.mustRun("team", "list"); !strings.Contains(out, "Ann Lee") || !strings.Contains(out, "Invited") {
		t.Errorf("team list output = %q", out)
	}

	if _, err := h.run("login", "ann", "-p", "wrong"); err == nil {
		t.Error("login with wrong password succeeded")
	}
	if out := h.mustRun("login", "ann", "-p", "pw"); !strings.Contains(out, "Welcome, Ann Lee") {
		t.Errorf("login output = %q", out)
	}
	store, err := settings.Open(h.settings)
	if err != nil {
		t.Fatal(err)
	}
	if cur := store.Get(); cur.LoginID != "ann" || cur.Server != h.server {
		t.Errorf("settings after login = %+v", cur)
	}
}

func TestSettingsAndExport(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("settings", "profile", "--name", "Ada Lovelace"); !strings.Contains(out, "Profile updated successfully") {
		t.Errorf("profile output = %q", out)
	}
	h.mustRun("settings", "prefs", "--notifications=false")
	if out := h.mustRun("settings", "show"); !strings.Contains(out, "Ada Lovelace") {
		t.Errorf("show output = %q", out)
	}

	h.mustRun("tasks", "add", "Backup me")
	var b Backup
	if err := json.Unmarshal([]byte(h.mustRun("export")), &b); err != nil {
		t.Fatal(err)
	}
	if b.Version != "1.0" || len(b.Tasks) != 1 || b.Profile.Avatar.Initials != "AL" || b.Preferences.Notifications {
		t.Errorf("backup = %+v", b)
	}
	if len(b.ActivityLog) != 1 || b.ActivityLog[0].TaskTitle != "Backup me" {
		t.Errorf("activity log = %+v", b.ActivityLog)
	}
}
