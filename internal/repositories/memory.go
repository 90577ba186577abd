package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

// memoryDB keeps all three collections behind one lock. It backs memory://
// URIs and the HTTP tests.
type memoryDB struct {
	mu         sync.RWMutex
	tasks      map[string]models.Task
	users      map[string]models.User
	activities []models.Activity
	seq        int64
}

// OpenMemory returns an empty in-process store.
func OpenMemory() *Store {
	db := &memoryDB{
		tasks: map[string]models.Task{},
		users: map[string]models.User{},
	}
	return &Store{
		Tasks:      &memoryTaskRepository{db: db},
		Users:      &memoryUserRepository{db: db},
		Activities: &memoryActivityRepository{db: db},
		Close:      func(context.Context) error { return nil },
	}
}

// stamp returns a strictly increasing time so creation order survives equal clocks.
func (db *memoryDB) stamp() time.Time {
	db.seq++
	return time.Now().UTC().Add(time.Duration(db.seq) * time.Nanosecond)
}

func cloneTask(t models.Task) models.Task {
	t.Subtasks = append([]models.Subtask{}, t.Subtasks...)
	return t
}

type memoryTaskRepository struct{ db *memoryDB }

func (r *memoryTaskRepository) Create(_ context.Context, task *models.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.stamp()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.db.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *memoryTaskRepository) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	t, ok := r.db.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t = cloneTask(t)
	return &t, nil
}

func (r *memoryTaskRepository) FindAll(_ context.Context) ([]models.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]models.Task, 0, len(r.db.tasks))
	for _, t := range r.db.tasks {
		out = append(out, cloneTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, task *models.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	prev, ok := r.db.tasks[task.ID]
	if !ok {
		return ErrNotFound
	}
	task.CreatedAt = prev.CreatedAt
	task.FocusTime = prev.FocusTime
	task.UpdatedAt = r.db.stamp()
	r.db.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, id string) (*models.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.db.tasks, id)
	return &t, nil
}

func (r *memoryTaskRepository) DeleteCompleted(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, t := range r.db.tasks {
		if t.Completed {
			delete(r.db.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryTaskRepository) AddFocusTime(_ context.Context, id string, seconds int64) (*models.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.FocusTime += seconds
	t.UpdatedAt = r.db.stamp()
	r.db.tasks[id] = t
	t = cloneTask(t)
	return &t, nil
}

type memoryUserRepository struct{ db *memoryDB }

// checkUnique must be called with the lock held.
func (r *memoryUserRepository) checkUnique(u *models.User) error {
	for id, other := range r.db.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return &DuplicateError{Field: "email"}
		}
		if other.LoginID == u.LoginID {
			return &DuplicateError{Field: "loginId"}
		}
	}
	return nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.checkUnique(user); err != nil {
		return err
	}
	now := r.db.stamp()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.db.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByLoginID(_ context.Context, loginID string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.LoginID == loginID {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) FindAll(_ context.Context) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]models.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	prev, ok := r.db.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.CreatedAt = prev.CreatedAt
	user.UpdatedAt = r.db.stamp()
	r.db.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

type memoryActivityRepository struct{ db *memoryDB }

func (r *memoryActivityRepository) Create(_ context.Context, a *models.Activity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a.ID = uuid.NewString()
	r.db.activities = append(r.db.activities, *a)
	return nil
}

func (r *memoryActivityRepository) ListRecent(_ context.Context, limit int) ([]models.Activity, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := append([]models.Activity{}, r.db.activities...)
	// stable keeps insertion order (reversed below) for equal timestamps
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryActivityRepository) DeleteAll(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := int64(len(r.db.activities))
	r.db.activities = nil
	return n, nil
}
