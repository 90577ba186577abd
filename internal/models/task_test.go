package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask(TaskInput{Title: "  Write report  "})

	if task.Title != "Write report" {
		t.Errorf("title = %q, want trimmed", task.Title)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("priority = %q, want Medium", task.Priority)
	}
	if task.Status != StatusToDo {
		t.Errorf("status = %q, want To Do", task.Status)
	}
	if task.Category != DefaultCategory {
		t.Errorf("category = %q, want %q", task.Category, DefaultCategory)
	}
	if task.Completed || task.FocusTime != 0 || task.DueDate != nil || task.Assignee != nil {
		t.Errorf("unexpected non-zero defaults: %+v", task)
	}
	if task.Subtasks == nil || len(task.Subtasks) != 0 {
		t.Errorf("subtasks = %#v, want empty non-nil slice", task.Subtasks)
	}
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{"valid", func(*Task) {}, false},
		{"empty title", func(t *Task) { t.Title = "" }, true},
		{"bad priority", func(t *Task) { t.Priority = "Urgent" }, true},
		{"bad status", func(t *Task) { t.Status = "Done" }, true},
		{"negative focus", func(t *Task) { t.FocusTime = -1 }, true},
		{"blank subtask", func(t *Task) { t.Subtasks = []Subtask{{Title: " "}} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask(TaskInput{Title: "x"})
			tt.mutate(&task)
			err := task.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsCode(err, ErrCodeInvalid) {
				t.Errorf("error code = %s, want INVALID", CodeOf(err))
			}
		})
	}
}

func TestTaskPatchNullClearsDueDate(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	name := "Ann"
	task := Task{Title: "x", DueDate: &due, Assignee: &name}

	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{"dueDate":null,"title":"y"}`), &patch); err != nil {
		t.Fatal(err)
	}
	task.Apply(patch)

	if task.DueDate != nil {
		t.Errorf("dueDate = %v, want cleared", task.DueDate)
	}
	if task.Assignee == nil || *task.Assignee != "Ann" {
		t.Errorf("assignee changed although absent from patch: %v", task.Assignee)
	}
	if task.Title != "y" {
		t.Errorf("title = %q, want y", task.Title)
	}
}

func TestTaskPatchAcceptsBareDate(t *testing.T) {
	var patch TaskPatch
	if err := json.Unmarshal([]byte(`{"dueDate":"2025-04-02"}`), &patch); err != nil {
		t.Fatal(err)
	}
	var task Task
	task.Apply(patch)
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2025-04-02" {
		t.Fatalf("dueDate = %v, want 2025-04-02", task.DueDate)
	}
}

func TestTaskPatchRoundTripKeepsAbsentFields(t *testing.T) {
	title := "renamed"
	data, err := json.Marshal(TaskPatch{Title: &title, Assignee: Null[string]()})
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	want := `{"title":"renamed","assignee":null}`
	if got != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlyToday := time.Date(2025, 5, 10, 1, 0, 0, 0, time.UTC)

	open := Task{DueDate: &yesterday}
	if !open.Overdue(now) {
		t.Error("open task due yesterday should be overdue")
	}
	done := Task{DueDate: &yesterday, Completed: true}
	if done.Overdue(now) {
		t.Error("completed task is never overdue")
	}
	today := Task{DueDate: &earlyToday}
	if today.Overdue(now) {
		t.Error("task due today is not overdue")
	}
}

func TestCompletionAction(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name   string
		before bool
		after  bool
		patch  TaskPatch
		want   string
	}{
		{"complete", false, true, TaskPatch{Completed: &yes}, ActionCompleted},
		{"reopen", true, false, TaskPatch{Completed: &no}, ActionUncompleted},
		{"same value", true, true, TaskPatch{Completed: &yes}, ActionUpdated},
		{"no completed field", false, false, TaskPatch{}, ActionUpdated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := &Task{Completed: tt.before}
			after := &Task{Completed: tt.after}
			if got := CompletionAction(before, after, tt.patch); got != tt.want {
				t.Errorf("CompletionAction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFocusLabel(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{90, "2m on Deep work"},
		{1500, "25m on Deep work"},
		{29, "0m on Deep work"},
		{30, "1m on Deep work"},
	}
	for _, tt := range tests {
		if got := FocusLabel(tt.seconds, "Deep work"); got != tt.want {
			t.Errorf("FocusLabel(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestClearedLabel(t *testing.T) {
	if got := ClearedLabel(3); got != "3 completed tasks" {
		t.Errorf("ClearedLabel(3) = %q", got)
	}
}
