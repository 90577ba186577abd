package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, due_date, priority, status, category,
       assignee, completed, subtasks, focus_time, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t        models.Task
		due      sql.NullTime
		assignee sql.NullString
		subtasks []byte
	)
	if err := row.Scan(
		&t.ID, &t.Title, &t.Description, &due, &t.Priority, &t.Status, &t.Category,
		&assignee, &t.Completed, &subtasks, &t.FocusTime, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	if assignee.Valid {
		a := assignee.String
		t.Assignee = &a
	}
	t.Subtasks = []models.Subtask{}
	if len(subtasks) > 0 {
		if err := json.Unmarshal(subtasks, &t.Subtasks); err != nil {
			return nil, fmt.Errorf("decode subtasks of task %s: %w", t.ID, err)
		}
	}
	return &t, nil
}

func encodeSubtasks(subs []models.Subtask) (string, error) {
	if subs == nil {
		subs = []models.Subtask{}
	}
	b, err := json.Marshal(subs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	subtasks, err := encodeSubtasks(task.Subtasks)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `
		INSERT INTO tasks (
			id, title, description, due_date, priority, status, category,
			assignee, completed, subtasks, focus_time, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb,$11,$12,$13)`
	_, err = r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.DueDate, task.Priority, task.Status, task.Category,
		task.Assignee, task.Completed, subtasks, task.FocusTime, task.CreatedAt, task.UpdatedAt,
	)
	return err
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	subtasks, err := encodeSubtasks(task.Subtasks)
	if err != nil {
		return err
	}
	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks SET
			title=$1, description=$2, due_date=$3, priority=$4, status=$5, category=$6,
			assignee=$7, completed=$8, subtasks=$9::jsonb, updated_at=$10
		WHERE id=$11
		RETURNING focus_time, created_at`
	err = r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Priority, task.Status, task.Category,
		task.Assignee, task.Completed, subtasks, task.UpdatedAt, task.ID,
	).Scan(&task.FocusTime, &task.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id string) (*models.Task, error) {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE completed = TRUE`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *taskRepository) AddFocusTime(ctx context.Context, id string, seconds int64) (*models.Task, error) {
	query := `
		UPDATE tasks SET focus_time = focus_time + $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + taskColumns
	task, err := scanTask(r.db.QueryRowContext(ctx, query, seconds, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
