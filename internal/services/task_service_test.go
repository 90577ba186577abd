package services

import (
	"context"
	"errors"
	"testing"

	"taskflow/internal/models"
	"taskflow/internal/repositories"
)

// MockActivityService records what task mutations append.
type MockActivityService struct {
	RecordFunc func(action, taskTitle string)
}

func (m *MockActivityService) ListRecent(context.Context) ([]models.Activity, error) {
	return nil, nil
}

func (m *MockActivityService) Append(context.Context, models.ActivityInput) (*models.Activity, error) {
	return nil, errors.New("not implemented")
}

func (m *MockActivityService) Clear(context.Context) (int64, error) { return 0, nil }

func (m *MockActivityService) Record(_ context.Context, action, taskTitle string) {
	if m.RecordFunc != nil {
		m.RecordFunc(action, taskTitle)
	}
}

type recorded struct{ action, title string }

func newTaskFixture(t *testing.T) (TaskService, *[]recorded) {
	t.Helper()
	var log []recorded
	acts := &MockActivityService{RecordFunc: func(action, title string) {
		log = append(log, recorded{action, title})
	}}
	return NewTaskService(repositories.OpenMemory().Tasks, acts, nil), &log
}

func TestTaskServiceRecordsLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, log := newTaskFixture(t)

	task, err := svc.Create(ctx, models.TaskInput{Title: "Ship it", Subtasks: []models.Subtask{{Title: "build"}}})
	if err != nil {
		t.Fatal(err)
	}
	if task.Subtasks[0].ID == "" {
		t.Error("subtask id not assigned on create")
	}
	if _, err := svc.Toggle(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	title := "Ship it now"
	if _, err := svc.Update(ctx, task.ID, models.TaskPatch{Title: &title}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Delete(ctx, task.ID); err != nil {
		t.Fatal(err)
	}

	want := []recorded{
		{models.ActionCreated, "Ship it"},
		{models.ActionCompleted, "Ship it"},
		{models.ActionUncompleted, "Ship it"},
		{models.ActionUpdated, "Ship it now"},
		{models.ActionDeleted, "Ship it now"},
	}
	if len(*log) != len(want) {
		t.Fatalf("recorded %d entries, want %d: %+v", len(*log), len(want), *log)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, (*log)[i], want[i])
		}
	}
}

func TestTaskServiceUnknownID(t *testing.T) {
	ctx := context.Background()
	svc, log := newTaskFixture(t)

	if _, err := svc.GetByID(ctx, "nope"); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("GetByID err = %v", err)
	}
	if _, err := svc.Delete(ctx, "nope"); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("Delete err = %v", err)
	}
	if _, err := svc.Toggle(ctx, "nope"); !models.IsCode(err, models.ErrCodeNotFound) {
		t.Errorf("Toggle err = %v", err)
	}
	if len(*log) != 0 {
		t.Errorf("failed mutations recorded activity: %+v", *log)
	}
}

func TestTaskServiceRejectsInvalidUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskFixture(t)
	task, _ := svc.Create(ctx, models.TaskInput{Title: "x"})

	blank := ""
	if _, err := svc.Update(ctx, task.ID, models.TaskPatch{Title: &blank}); !models.IsCode(err, models.ErrCodeInvalid) {
		t.Fatalf("err = %v, want INVALID", err)
	}
	got, _ := svc.GetByID(ctx, task.ID)
	if got.Title != "x" {
		t.Errorf("invalid update persisted: %q", got.Title)
	}
}

func TestTaskServiceClearCompleted(t *testing.T) {
	ctx := context.Background()
	svc, log := newTaskFixture(t)

	n, err := svc.ClearCompleted(ctx)
	if err != nil || n != 0 {
		t.Fatalf("ClearCompleted on empty = %d, %v", n, err)
	}
	if len(*log) != 0 {
		t.Errorf("clearing nothing recorded %+v", *log)
	}

	for _, title := range []string{"a", "b", "c"} {
		task, _ := svc.Create(ctx, models.TaskInput{Title: title})
		if title != "c" {
			_, _ = svc.Toggle(ctx, task.ID)
		}
	}
	*log = nil

	n, err = svc.ClearCompleted(ctx)
	if err != nil || n != 2 {
		t.Fatalf("ClearCompleted = %d, %v; want 2", n, err)
	}
	if len(*log) != 1 || (*log)[0] != (recorded{models.ActionCleared, "2 completed tasks"}) {
		t.Errorf("recorded %+v", *log)
	}
	left, _ := svc.List(ctx)
	if len(left) != 1 || left[0].Title != "c" {
		t.Errorf("remaining tasks = %+v", left)
	}
}

func TestTaskServiceLogFocusTime(t *testing.T) {
	ctx := context.Background()
	svc, log := newTaskFixture(t)
	task, _ := svc.Create(ctx, models.TaskInput{Title: "Deep work"})
	*log = nil

	for _, seconds := range []int64{0, -5} {
		if _, err := svc.LogFocusTime(ctx, task.ID, seconds); !models.IsCode(err, models.ErrCodeInvalid) {
			t.Errorf("LogFocusTime(%d) err = %v, want INVALID", seconds, err)
		}
	}

	got, err := svc.LogFocusTime(ctx, task.ID, 90)
	if err != nil {
		t.Fatal(err)
	}
	got, _ = svc.LogFocusTime(ctx, task.ID, 60)
	if got.FocusTime != 150 {
		t.Errorf("focusTime = %d, want 150", got.FocusTime)
	}
	if len(*log) != 2 || (*log)[0] != (recorded{models.ActionFocusSession, "2m on Deep work"}) {
		t.Errorf("recorded %+v", *log)
	}
}

// racingTaskRepository runs onUpdate just before each Update reaches the store.
type racingTaskRepository struct {
	repositories.TaskRepository
	onUpdate func()
}

func (r *racingTaskRepository) Update(ctx context.Context, task *models.Task) error {
	if r.onUpdate != nil {
		r.onUpdate()
	}
	return r.TaskRepository.Update(ctx, task)
}

func TestTaskServiceUpdateKeepsConcurrentFocusTime(t *testing.T) {
	ctx := context.Background()
	repo := &racingTaskRepository{TaskRepository: repositories.OpenMemory().Tasks}
	svc := NewTaskService(repo, &MockActivityService{}, nil)

	task, err := svc.Create(ctx, models.TaskInput{Title: "Deep work"})
	if err != nil {
		t.Fatal(err)
	}
	repo.onUpdate = func() {
		if _, err := repo.AddFocusTime(ctx, task.ID, 300); err != nil {
			t.Errorf("AddFocusTime: %v", err)
		}
	}

	title := "Deeper work"
	got, err := svc.Update(ctx, task.ID, models.TaskPatch{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if got.FocusTime != 300 || got.Title != "Deeper work" {
		t.Errorf("after update = %+v", got)
	}
	stored, _ := repo.FindByID(ctx, task.ID)
	if stored.FocusTime != 300 {
		t.Errorf("stored focusTime = %d, want 300", stored.FocusTime)
	}

	repo.onUpdate = nil
	reset := int64(60)
	got, err = svc.Update(ctx, task.ID, models.TaskPatch{FocusTime: &reset})
	if err != nil {
		t.Fatal(err)
	}
	stored, _ = repo.FindByID(ctx, task.ID)
	if got.FocusTime != 60 || stored.FocusTime != 60 {
		t.Errorf("explicit focusTime: returned %d, stored %d", got.FocusTime, stored.FocusTime)
	}
}
