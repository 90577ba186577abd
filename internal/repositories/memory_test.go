package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflow/internal/models"
)

func TestMemoryTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	store := OpenMemory()

	first := models.NewTask(models.TaskInput{Title: "first"})
	second := models.NewTask(models.TaskInput{Title: "second"})
	for _, task := range []*models.Task{&first, &second} {
		if err := store.Tasks.Create(ctx, task); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if task.ID == "" || task.CreatedAt.IsZero() {
			t.Fatalf("Create did not assign id/timestamps: %+v", task)
		}
	}

	all, err := store.Tasks.FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Title != "second" {
		t.Fatalf("FindAll order = %v, want newest first", titles(all))
	}

	updated, err := store.Tasks.AddFocusTime(ctx, first.ID, 90)
	if err != nil {
		t.Fatal(err)
	}
	if updated.FocusTime != 90 {
		t.Errorf("focusTime = %d, want 90", updated.FocusTime)
	}
	if _, err := store.Tasks.AddFocusTime(ctx, "missing", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddFocusTime(missing) err = %v", err)
	}

	first.Completed = true
	if err := store.Tasks.Update(ctx, &first); err != nil {
		t.Fatal(err)
	}
	n, err := store.Tasks.DeleteCompleted(ctx)
	if err != nil || n != 1 {
		t.Fatalf("DeleteCompleted = %d, %v; want 1", n, err)
	}

	removed, err := store.Tasks.Delete(ctx, second.ID)
	if err != nil || removed.Title != "second" {
		t.Fatalf("Delete = %+v, %v", removed, err)
	}
	if _, err := store.Tasks.FindByID(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID after delete err = %v", err)
	}
}

func TestMemoryTaskCopiesSubtasks(t *testing.T) {
	ctx := context.Background()
	store := OpenMemory()
	task := models.NewTask(models.TaskInput{Title: "x", Subtasks: []models.Subtask{{ID: "s", Title: "a"}}})
	if err := store.Tasks.Create(ctx, &task); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Tasks.FindByID(ctx, task.ID)
	got.Subtasks[0].Completed = true

	again, _ := store.Tasks.FindByID(ctx, task.ID)
	if again.Subtasks[0].Completed {
		t.Error("mutating a returned task leaked into the store")
	}
}

func TestMemoryUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := OpenMemory()

	ann := models.User{Name: "Ann", Email: "ann@example.com", LoginID: "ann"}
	if err := store.Users.Create(ctx, &ann); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		user  models.User
		field string
	}{
		{"same email", models.User{Email: "ann@example.com", LoginID: "other"}, "email"},
		{"same login id", models.User{Email: "b@example.com", LoginID: "ann"}, "loginId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Users.Create(ctx, &tt.user)
			var dup *DuplicateError
			if !errors.As(err, &dup) || dup.Field != tt.field {
				t.Fatalf("err = %v, want duplicate %s", err, tt.field)
			}
			if !errors.Is(err, ErrDuplicate) {
				t.Error("DuplicateError should unwrap to ErrDuplicate")
			}
		})
	}

	// updating a user with its own email is not a conflict
	ann.Role = "Lead"
	if err := store.Users.Update(ctx, &ann); err != nil {
		t.Fatalf("self update: %v", err)
	}
	got, err := store.Users.FindByLoginID(ctx, "ann")
	if err != nil || got.Role != "Lead" {
		t.Fatalf("FindByLoginID = %+v, %v", got, err)
	}
	if err := store.Users.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) err = %v", err)
	}
}

func TestMemoryActivitiesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := OpenMemory()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	entries := []models.Activity{
		{Action: models.ActionCreated, TaskTitle: "a", Timestamp: base},
		{Action: models.ActionCompleted, TaskTitle: "a", Timestamp: base.Add(time.Minute)},
		{Action: models.ActionDeleted, TaskTitle: "a", Timestamp: base.Add(time.Minute)},
	}
	for i := range entries {
		if err := store.Activities.Create(ctx, &entries[i]); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.Activities.ListRecent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Action != models.ActionDeleted || got[1].Action != models.ActionCompleted {
		t.Fatalf("ListRecent = %+v", got)
	}

	n, err := store.Activities.DeleteAll(ctx)
	if err != nil || n != 3 {
		t.Fatalf("DeleteAll = %d, %v", n, err)
	}
	if rest, _ := store.Activities.ListRecent(ctx, 10); len(rest) != 0 {
		t.Errorf("activities left after DeleteAll: %d", len(rest))
	}
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
