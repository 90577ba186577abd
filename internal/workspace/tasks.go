package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/models"
)

// TaskAPI is the part of the TaskFlow API the task store talks to.
// *client.Client satisfies it.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleTask(ctx context.Context, id string) (*models.Task, error)
	LogFocusTime(ctx context.Context, id string, seconds int64) (*models.Task, error)
	ClearCompleted(ctx context.Context) (int64, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	ClearActivities(ctx context.Context) error
}

// TaskStore holds the local task list and activity log.
type TaskStore struct {
	api TaskAPI
	log *zap.Logger
	now func() time.Time

	mu       sync.Mutex
	tasks    []models.Task
	activity []models.Activity
	pending  queue
}

func NewTaskStore(api TaskAPI, log *zap.Logger) *TaskStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskStore{api: api, log: log.Named("workspace.tasks"), now: time.Now}
}

// effect is the provisional activity entry of a mutation; an empty action
// means the mutation logs nothing.
type effect struct {
	action string
	title  string
}

type mutation struct {
	kind   OpKind
	target string
	// apply runs under the lock before the request is sent.
	apply func(op PendingOp) (effect, error)
	// call runs without the lock; the returned commit runs under it on success.
	call func(ctx context.Context) (commit func(), err error)
	// rollback runs under the lock on failure. Nil keeps the optimistic state.
	rollback func()
}

func (s *TaskStore) run(ctx context.Context, m mutation) error {
	s.mu.Lock()
	op := s.pending.push(m.kind, m.target, s.now())
	eff, err := m.apply(op)
	if err != nil {
		s.pending.done(op.ID)
		s.mu.Unlock()
		return err
	}
	if eff.action != "" {
		s.addProvisional(op, eff)
	}
	s.mu.Unlock()

	commit, err := m.call(ctx)

	s.mu.Lock()
	s.pending.done(op.ID)
	if err != nil {
		s.dropProvisional(op.ID)
		if m.rollback != nil {
			m.rollback()
		}
		s.mu.Unlock()
		s.log.Warn(fmt.Sprintf("[workspace][%s] failed", m.kind),
			zap.String("target", m.target), zap.Error(err))
		return err
	}
	if commit != nil {
		commit()
	}
	s.mu.Unlock()

	if eff.action != "" {
		s.reconcile(ctx)
	}
	return nil
}

// Load replaces local state with the server's tasks and recent activity.
func (s *TaskStore) Load(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	acts, err := s.api.ListActivities(ctx)
	if err != nil {
		return fmt.Errorf("load activities: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.activity = s.mergeActivity(acts)
	return nil
}

func (s *TaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

func (s *TaskStore) Task(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneTask(s.tasks[i]), true
	}
	return models.Task{}, false
}

// Activity returns the log newest first, provisional entries included.
func (s *TaskStore) Activity() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Activity, len(s.activity))
	copy(out, s.activity)
	return out
}

func (s *TaskStore) Pending() []PendingOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.snapshot()
}

func (s *TaskStore) AddTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	var saved *models.Task
	var tempID string
	err := s.run(ctx, mutation{
		kind: OpAddTask,
		apply: func(op PendingOp) (effect, error) {
			t := models.NewTask(in)
			if err := t.Validate(); err != nil {
				return effect{}, err
			}
			t.ID, tempID = op.ID, op.ID
			t.CreatedAt, t.UpdatedAt = op.StartedAt, op.StartedAt
			s.tasks = append([]models.Task{t}, s.tasks...)
			return effect{models.ActionCreated, t.Title}, nil
		},
		call: func(ctx context.Context) (func(), error) {
			t, err := s.api.CreateTask(ctx, in)
			if err != nil {
				return nil, err
			}
			saved = t
			return func() {
				if i := s.indexOf(tempID); i >= 0 {
					s.tasks[i] = *t
					return
				}
				s.tasks = append([]models.Task{*t}, s.tasks...)
			}, nil
		},
		rollback: func() { s.remove(tempID) },
	})
	return saved, err
}

func (s *TaskStore) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var (
		saved *models.Task
		prior models.Task
		at    int
	)
	err := s.run(ctx, mutation{
		kind:   OpUpdateTask,
		target: id,
		apply: func(PendingOp) (effect, error) {
			i := s.indexOf(id)
			if i < 0 {
				return effect{}, ErrTaskNotFound
			}
			prior, at = cloneTask(s.tasks[i]), i
			next := cloneTask(prior)
			next.Apply(patch)
			if err := next.Validate(); err != nil {
				return effect{}, err
			}
			s.tasks[i] = next
			return effect{models.CompletionAction(&prior, &next, patch), next.Title}, nil
		},
		call: func(ctx context.Context) (func(), error) {
			t, err := s.api.UpdateTask(ctx, id, patch)
			if err != nil {
				return nil, err
			}
			saved = t
			return func() { s.replace(*t) }, nil
		},
		rollback: func() { s.restore(prior, at) },
	})
	return saved, err
}

func (s *TaskStore) DeleteTask(ctx context.Context, id string) error {
	var (
		prior models.Task
		at    int
	)
	return s.run(ctx, mutation{
		kind:   OpDeleteTask,
		target: id,
		apply: func(PendingOp) (effect, error) {
			i := s.indexOf(id)
			if i < 0 {
				return effect{}, ErrTaskNotFound
			}
			prior, at = s.tasks[i], i
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			return effect{models.ActionDeleted, prior.Title}, nil
		},
		call: func(ctx context.Context) (func(), error) {
			return nil, s.api.DeleteTask(ctx, id)
		},
		rollback: func() { s.restore(prior, at) },
	})
}

func (s *TaskStore) ToggleTask(ctx context.Context, id string) (*models.Task, error) {
	var (
		saved *models.Task
		prior models.Task
		at    int
	)
	err := s.run(ctx, mutation{
		kind:   OpToggleTask,
		target: id,
		apply: func(PendingOp) (effect, error) {
			i := s.indexOf(id)
			if i < 0 {
				return effect{}, ErrTaskNotFound
			}
			prior, at = cloneTask(s.tasks[i]), i
			s.tasks[i].Completed = !prior.Completed
			action := models.ActionCompleted
			if prior.Completed {
				action = models.ActionUncompleted
			}
			return effect{action, prior.Title}, nil
		},
		call: func(ctx context.Context) (func(), error) {
			t, err := s.api.ToggleTask(ctx, id)
			if err != nil {
				return nil, err
			}
			saved = t
			return func() { s.replace(*t) }, nil
		},
		rollback: func() { s.restore(prior, at) },
	})
	return saved, err
}

func (s *TaskStore) AddSubtask(ctx context.Context, taskID, title string) (*models.Task, error) {
	t, ok := s.Task(taskID)
	if !ok {
		return nil, ErrTaskNotFound
	}
	subs := models.AppendSubtask(t.Subtasks, title)
	return s.UpdateTask(ctx, taskID, models.TaskPatch{Subtasks: &subs})
}

// ToggleSubtask flips a subtask; checking the last open one completes the task.
func (s *TaskStore) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*models.Task, error) {
	t, ok := s.Task(taskID)
	if !ok {
		return nil, ErrTaskNotFound
	}
	if !hasSubtask(t.Subtasks, subtaskID) {
		return nil, ErrSubtaskNotFound
	}
	subs, completed := models.ToggleSubtask(t.Subtasks, subtaskID, t.Completed)
	return s.UpdateTask(ctx, taskID, models.TaskPatch{Subtasks: &subs, Completed: &completed})
}

func (s *TaskStore) DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*models.Task, error) {
	t, ok := s.Task(taskID)
	if !ok {
		return nil, ErrTaskNotFound
	}
	if !hasSubtask(t.Subtasks, subtaskID) {
		return nil, ErrSubtaskNotFound
	}
	subs := models.RemoveSubtask(t.Subtasks, subtaskID)
	return s.UpdateTask(ctx, taskID, models.TaskPatch{Subtasks: &subs})
}

type placed struct {
	task models.Task
	at   int
}

// ClearCompleted removes every completed task. Nothing is sent when no
// local task is completed.
func (s *TaskStore) ClearCompleted(ctx context.Context) (int64, error) {
	s.mu.Lock()
	done := 0
	for _, t := range s.tasks {
		if t.Completed {
			done++
		}
	}
	s.mu.Unlock()
	if done == 0 {
		return 0, nil
	}

	var (
		removed []placed
		deleted int64
	)
	err := s.run(ctx, mutation{
		kind: OpClearCompleted,
		apply: func(PendingOp) (effect, error) {
			kept := make([]models.Task, 0, len(s.tasks))
			for i, t := range s.tasks {
				if t.Completed {
					removed = append(removed, placed{task: t, at: i})
					continue
				}
				kept = append(kept, t)
			}
			s.tasks = kept
			if len(removed) == 0 {
				return effect{}, nil
			}
			return effect{models.ActionCleared, models.ClearedLabel(int64(len(removed)))}, nil
		},
		call: func(ctx context.Context) (func(), error) {
			n, err := s.api.ClearCompleted(ctx)
			deleted = n
			return nil, err
		},
		rollback: func() {
			for _, p := range removed {
				s.restore(p.task, p.at)
			}
		},
	})
	return deleted, err
}

// LogFocusTime adds a finished focus session to a task. A failed request is
// logged and the local aggregate is kept.
func (s *TaskStore) LogFocusTime(ctx context.Context, taskID string, seconds int64) error {
	if seconds <= 0 {
		return models.NewError(models.ErrCodeInvalid, "seconds must be positive")
	}
	applied := false
	err := s.run(ctx, mutation{
		kind:   OpLogFocus,
		target: taskID,
		apply: func(PendingOp) (effect, error) {
			i := s.indexOf(taskID)
			if i < 0 {
				return effect{}, ErrTaskNotFound
			}
			s.tasks[i].FocusTime += seconds
			applied = true
			return effect{models.ActionFocusSession, models.FocusLabel(seconds, s.tasks[i].Title)}, nil
		},
		call: func(ctx context.Context) (func(), error) {
			t, err := s.api.LogFocusTime(ctx, taskID, seconds)
			if err != nil {
				return nil, err
			}
			return func() { s.replace(*t) }, nil
		},
	})
	if err != nil && applied {
		return nil
	}
	return err
}

func (s *TaskStore) ClearActivity(ctx context.Context) error {
	var prior []models.Activity
	return s.run(ctx, mutation{
		kind: OpClearActivity,
		apply: func(PendingOp) (effect, error) {
			prior, s.activity = s.activity, nil
			return effect{}, nil
		},
		call: func(ctx context.Context) (func(), error) {
			return nil, s.api.ClearActivities(ctx)
		},
		rollback: func() { s.activity = append(s.activity, prior...) },
	})
}

// Reorder moves the listed tasks to the front in the given order. The order
// is local only; the server keeps sorting by creation time.
func (s *TaskStore) Reorder(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(ids))
	out := make([]models.Task, 0, len(s.tasks))
	for _, id := range ids {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, s.tasks[i])
	}
	for _, t := range s.tasks {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}
	s.tasks = out
	return nil
}

// reconcile swaps provisional entries of settled operations for the
// server's copy of the log.
func (s *TaskStore) reconcile(ctx context.Context) {
	acts, err := s.api.ListActivities(ctx)
	if err != nil {
		s.log.Warn("[workspace][reconcile] failed", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.activity = s.mergeActivity(acts)
	s.mu.Unlock()
}

func (s *TaskStore) mergeActivity(server []models.Activity) []models.Activity {
	out := make([]models.Activity, 0, len(server)+len(s.pending.ops))
	for _, a := range s.activity {
		if s.pending.has(a.ID) {
			out = append(out, a)
		}
	}
	out = append(out, server...)
	if len(out) > models.RecentActivityLimit {
		out = out[:models.RecentActivityLimit]
	}
	return out
}

func (s *TaskStore) addProvisional(op PendingOp, eff effect) {
	entry := models.Activity{
		ID:        op.ID,
		Action:    eff.action,
		TaskTitle: eff.title,
		Timestamp: op.StartedAt,
	}
	s.activity = append([]models.Activity{entry}, s.activity...)
	if len(s.activity) > models.RecentActivityLimit {
		s.activity = s.activity[:models.RecentActivityLimit]
	}
}

func (s *TaskStore) dropProvisional(opID string) {
	for i, a := range s.activity {
		if a.ID == opID {
			s.activity = append(s.activity[:i], s.activity[i+1:]...)
			return
		}
	}
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) replace(t models.Task) {
	if i := s.indexOf(t.ID); i >= 0 {
		s.tasks[i] = t
	}
}

func (s *TaskStore) remove(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
}

// restore puts a task back as it was, at its old position if it is gone.
func (s *TaskStore) restore(t models.Task, at int) {
	if i := s.indexOf(t.ID); i >= 0 {
		s.tasks[i] = t
		return
	}
	at = min(max(at, 0), len(s.tasks))
	s.tasks = append(s.tasks[:at], append([]models.Task{t}, s.tasks[at:]...)...)
}

func cloneTask(t models.Task) models.Task {
	t.Subtasks = append([]models.Subtask(nil), t.Subtasks...)
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.Assignee != nil {
		a := *t.Assignee
		t.Assignee = &a
	}
	return t
}

func hasSubtask(subs []models.Subtask, id string) bool {
	for _, st := range subs {
		if st.ID == id {
			return true
		}
	}
	return false
}
