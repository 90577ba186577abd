// Package workspace keeps local copies of tasks, team members and the
// activity log in step with the server. Every mutation is applied
// optimistically and tracked as a pending operation until the server answers.
package workspace

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound    = errors.New("workspace: task not found")
	ErrSubtaskNotFound = errors.New("workspace: subtask not found")
	ErrMemberNotFound  = errors.New("workspace: member not found")
	ErrAlreadyInTeam   = errors.New("this email address is already in the team")
)

type OpKind string

const (
	OpAddTask        OpKind = "add_task"
	OpUpdateTask     OpKind = "update_task"
	OpDeleteTask     OpKind = "delete_task"
	OpToggleTask     OpKind = "toggle_task"
	OpClearCompleted OpKind = "clear_completed"
	OpLogFocus       OpKind = "log_focus"
	OpClearActivity  OpKind = "clear_activity"
	OpAddMember      OpKind = "add_member"
	OpUpdateMember   OpKind = "update_member"
	OpDeleteMember   OpKind = "delete_member"
)

// PendingOp is a mutation that has been applied locally but not yet
// confirmed. ID doubles as the temporary id of any optimistic record
// (a new task, a new member, a provisional activity entry).
type PendingOp struct {
	ID        string
	Kind      OpKind
	TargetID  string
	StartedAt time.Time
}

// queue is not safe for concurrent use; owners guard it with their mutex.
type queue struct {
	ops []PendingOp
}

func (q *queue) push(kind OpKind, target string, now time.Time) PendingOp {
	op := PendingOp{
		ID:        uuid.NewString(),
		Kind:      kind,
		TargetID:  target,
		StartedAt: now,
	}
	q.ops = append(q.ops, op)
	return op
}

func (q *queue) done(id string) {
	for i, op := range q.ops {
		if op.ID == id {
			q.ops = append(q.ops[:i], q.ops[i+1:]...)
			return
		}
	}
}

func (q *queue) has(id string) bool {
	for _, op := range q.ops {
		if op.ID == id {
			return true
		}
	}
	return false
}

func (q *queue) snapshot() []PendingOp {
	out := make([]PendingOp, len(q.ops))
	copy(out, q.ops)
	return out
}
