package services

import (
	"context"

	"go.uber.org/zap"

	"taskflow/internal/models"
	"taskflow/internal/repositories"
)

// TaskService defines task-related business logic. Every successful mutation
// records an activity entry; activity failures never fail the mutation.
type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) (*models.Task, error)
	Toggle(ctx context.Context, id string) (*models.Task, error)
	ClearCompleted(ctx context.Context) (int64, error)
	LogFocusTime(ctx context.Context, id string, seconds int64) (*models.Task, error)
}

type taskService struct {
	repo       repositories.TaskRepository
	activities ActivityService
	log        *zap.Logger
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, activities ActivityService, log *zap.Logger) TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &taskService{repo: repo, activities: activities, log: log.Named("task")}
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	return s.repo.FindAll(ctx)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, models.ErrTaskNotFound)
	}
	return t, nil
}

func (s *taskService) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	task := models.NewTask(in)
	task.Subtasks = models.EnsureSubtaskIDs(task.Subtasks)
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, err
	}
	s.log.Info("[task][create] ok", zap.String("id", task.ID))
	s.activities.Record(ctx, models.ActionCreated, task.Title)
	return &task, nil
}

func (s *taskService) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, models.ErrTaskNotFound)
	}

	after := *before
	after.Subtasks = append([]models.Subtask{}, before.Subtasks...)
	after.Apply(patch)
	after.Subtasks = models.EnsureSubtaskIDs(after.Subtasks)
	if err := after.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &after); err != nil {
		return nil, translate(err, models.ErrTaskNotFound)
	}
	if patch.FocusTime != nil && *patch.FocusTime != after.FocusTime {
		stored, err := s.repo.AddFocusTime(ctx, id, *patch.FocusTime-after.FocusTime)
		if err != nil {
			return nil, translate(err, models.ErrTaskNotFound)
		}
		after.FocusTime = stored.FocusTime
		after.UpdatedAt = stored.UpdatedAt
	}

	action := models.CompletionAction(before, &after, patch)
	s.log.Info("[task][update] ok", zap.String("id", id), zap.String("action", action))
	s.activities.Record(ctx, action, after.Title)
	return &after, nil
}

func (s *taskService) Delete(ctx context.Context, id string) (*models.Task, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translate(err, models.ErrTaskNotFound)
	}
	s.log.Info("[task][delete] ok", zap.String("id", id))
	s.activities.Record(ctx, models.ActionDeleted, deleted.Title)
	return deleted, nil
}

func (s *taskService) Toggle(ctx context.Context, id string) (*models.Task, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, models.ErrTaskNotFound)
	}
	flipped := !current.Completed
	return s.Update(ctx, id, models.TaskPatch{Completed: &flipped})
}

func (s *taskService) ClearCompleted(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteCompleted(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("[task][clear-completed] ok", zap.Int64("deleted", n))
	if n > 0 {
		s.activities.Record(ctx, models.ActionCleared, models.ClearedLabel(n))
	}
	return n, nil
}

func (s *taskService) LogFocusTime(ctx context.Context, id string, seconds int64) (*models.Task, error) {
	if seconds <= 0 {
		return nil, models.NewError(models.ErrCodeInvalid, "seconds must be positive")
	}
	task, err := s.repo.AddFocusTime(ctx, id, seconds)
	if err != nil {
		return nil, translate(err, models.ErrTaskNotFound)
	}
	s.log.Info("[task][focus] ok", zap.String("id", id), zap.Int64("seconds", seconds))
	s.activities.Record(ctx, models.ActionFocusSession, models.FocusLabel(seconds, task.Title))
	return task, nil
}
