package models

import (
	"fmt"
	"strings"
	"time"
)

// Activity actions emitted by task mutations.
const (
	ActionCreated      = "created"
	ActionUpdated      = "updated"
	ActionCompleted    = "completed"
	ActionUncompleted  = "uncompleted"
	ActionDeleted      = "deleted"
	ActionCleared      = "cleared"
	ActionFocusSession = "focus_session"
)

// RecentActivityLimit caps how many entries the list endpoint returns.
const RecentActivityLimit = 1000

// Activity is an immutable log entry. TaskTitle is a snapshot, not a reference.
type Activity struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	TaskTitle string    `json:"taskTitle"`
	Timestamp time.Time `json:"timestamp"`
}

type ActivityInput struct {
	Action    string    `json:"action"`
	TaskTitle string    `json:"taskTitle"`
	Timestamp *FlexTime `json:"timestamp,omitempty"`
}

func (in ActivityInput) Validate() error {
	if strings.TrimSpace(in.Action) == "" {
		return NewError(ErrCodeInvalid, "action is required")
	}
	if strings.TrimSpace(in.TaskTitle) == "" {
		return NewError(ErrCodeInvalid, "taskTitle is required")
	}
	return nil
}

// ClearedLabel is the taskTitle of the summary entry for a clear-completed batch.
func ClearedLabel(n int64) string {
	return fmt.Sprintf("%d completed tasks", n)
}

// FocusLabel describes a focus session, rounding to whole minutes half up.
func FocusLabel(seconds int64, title string) string {
	return fmt.Sprintf("%dm on %s", (seconds+30)/60, title)
}

// CompletionAction picks the activity action for an update.
func CompletionAction(before, after *Task, patch TaskPatch) string {
	if patch.Completed != nil {
		switch {
		case !before.Completed && after.Completed:
			return ActionCompleted
		case before.Completed && !after.Completed:
			return ActionUncompleted
		}
	}
	return ActionUpdated
}
