package repositories

import (
	"context"
	"errors"
	"fmt"

	"taskflow/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateError names the unique field that was violated.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return ErrDuplicate.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDuplicate, e.Field)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

type TaskRepository interface {
	// Create assigns ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	// FindAll returns every task, newest created first.
	FindAll(ctx context.Context) ([]models.Task, error)
	// Update persists every mutable field of task except FocusTime and
	// refreshes UpdatedAt. task.FocusTime is reloaded from the store.
	Update(ctx context.Context, task *models.Task) error
	// Delete removes the task and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*models.Task, error)
	DeleteCompleted(ctx context.Context) (int64, error)
	// AddFocusTime atomically increments focusTime and returns the updated task.
	AddFocusTime(ctx context.Context, id string, seconds int64) (*models.Task, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByLoginID(ctx context.Context, loginID string) (*models.User, error)
	// FindAll returns every user, newest created first.
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Store bundles the three collections of one backend.
type Store struct {
	Tasks      TaskRepository
	Users      UserRepository
	Activities ActivityRepository
	Close      func(ctx context.Context) error
}
