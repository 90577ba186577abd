package models

import (
	"strings"

	"github.com/google/uuid"
)

// EnsureSubtaskIDs gives every subtask without an id a fresh one.
func EnsureSubtaskIDs(subs []Subtask) []Subtask {
	for i := range subs {
		if subs[i].ID == "" {
			subs[i].ID = uuid.NewString()
		}
		subs[i].Title = strings.TrimSpace(subs[i].Title)
	}
	return subs
}

// AppendSubtask returns a copy of subs with a new open subtask at the end.
func AppendSubtask(subs []Subtask, title string) []Subtask {
	out := make([]Subtask, 0, len(subs)+1)
	out = append(out, subs...)
	return append(out, Subtask{Title: strings.TrimSpace(title)})
}

// ToggleSubtask flips one subtask and reports whether the parent should now be
// completed. Completion only ever moves forward: a parent that was already
// completed stays completed when a subtask is reopened.
func ToggleSubtask(subs []Subtask, subtaskID string, parentCompleted bool) ([]Subtask, bool) {
	out := make([]Subtask, len(subs))
	copy(out, subs)
	for i := range out {
		if out[i].ID == subtaskID {
			out[i].Completed = !out[i].Completed
		}
	}
	if AllSubtasksDone(out) {
		return out, true
	}
	return out, parentCompleted
}

// RemoveSubtask returns a copy of subs without the given subtask.
func RemoveSubtask(subs []Subtask, subtaskID string) []Subtask {
	out := make([]Subtask, 0, len(subs))
	for _, st := range subs {
		if st.ID != subtaskID {
			out = append(out, st)
		}
	}
	return out
}

// AllSubtasksDone is true for a non-empty list whose items are all completed.
func AllSubtasksDone(subs []Subtask) bool {
	if len(subs) == 0 {
		return false
	}
	for _, st := range subs {
		if !st.Completed {
			return false
		}
	}
	return true
}
