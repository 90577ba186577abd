// internal/models/task.go
package models

import (
	"strings"
	"time"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusInReview   TaskStatus = "In Review"
	StatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

const DefaultCategory = "Work"

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusInReview, StatusCompleted:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Weight orders priorities for focus selection (High first).
func (p TaskPriority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Subtask is a checklist item stored inline in its parent task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task represents the structure of a task in the system.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"dueDate"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Category    string       `json:"category"`
	Assignee    *string      `json:"assignee"`
	Completed   bool         `json:"completed"`
	Subtasks    []Subtask    `json:"subtasks"`
	FocusTime   int64        `json:"focusTime"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TaskInput is the create payload. Zero values fall back to the documented defaults.
type TaskInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     *FlexTime    `json:"dueDate,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	Status      TaskStatus   `json:"status,omitempty"`
	Category    string       `json:"category,omitempty"`
	Assignee    *string      `json:"assignee,omitempty"`
	Completed   bool         `json:"completed,omitempty"`
	Subtasks    []Subtask    `json:"subtasks,omitempty"`
	FocusTime   int64        `json:"focusTime,omitempty"`
}

// TaskPatch is a sparse update. Nil pointers and unset Nullables leave the field untouched;
// a Nullable set to JSON null clears it.
type TaskPatch struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	DueDate     Nullable[FlexTime] `json:"dueDate,omitzero"`
	Priority    *TaskPriority      `json:"priority,omitempty"`
	Status      *TaskStatus        `json:"status,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Assignee    Nullable[string]   `json:"assignee,omitzero"`
	Completed   *bool              `json:"completed,omitempty"`
	Subtasks    *[]Subtask         `json:"subtasks,omitempty"`
	FocusTime   *int64             `json:"focusTime,omitempty"`
}

// NewTask builds a task from a create payload with defaults applied.
func NewTask(in TaskInput) Task {
	t := Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		Category:    in.Category,
		Assignee:    in.Assignee,
		Completed:   in.Completed,
		Subtasks:    append([]Subtask{}, in.Subtasks...),
		FocusTime:   in.FocusTime,
	}
	if in.DueDate != nil {
		d := in.DueDate.Time
		t.DueDate = &d
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusToDo
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	return t
}

// Apply merges a patch into the task.
func (t *Task) Apply(p TaskPatch) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate.Set {
		if p.DueDate.Value == nil {
			t.DueDate = nil
		} else {
			d := p.DueDate.Value.Time
			t.DueDate = &d
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Assignee.Set {
		t.Assignee = p.Assignee.Value
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Subtasks != nil {
		t.Subtasks = append([]Subtask{}, (*p.Subtasks)...)
	}
	if p.FocusTime != nil {
		t.FocusTime = *p.FocusTime
	}
}

// Validate checks the schema constraints of a task.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewError(ErrCodeInvalid, "title is required")
	}
	if !t.Priority.Valid() {
		return NewError(ErrCodeInvalid, "invalid priority: "+string(t.Priority))
	}
	if !t.Status.Valid() {
		return NewError(ErrCodeInvalid, "invalid status: "+string(t.Status))
	}
	if t.FocusTime < 0 {
		return NewError(ErrCodeInvalid, "focusTime must not be negative")
	}
	for _, st := range t.Subtasks {
		if strings.TrimSpace(st.Title) == "" {
			return NewError(ErrCodeInvalid, "subtask title is required")
		}
	}
	return nil
}

// Overdue reports whether an open task was due before the start of now's day.
func (t *Task) Overdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(StartOfDay(now))
}

// StartOfDay truncates to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
