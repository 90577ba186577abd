package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *models.Activity) error {
	a.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (id, action, task_title, occurred_at) VALUES ($1,$2,$3,$4)`,
		a.ID, a.Action, a.TaskTitle, a.Timestamp,
	)
	return err
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, task_title, occurred_at
		FROM activities
		ORDER BY occurred_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Action, &a.TaskTitle, &a.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *activityRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
