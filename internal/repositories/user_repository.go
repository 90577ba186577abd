package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, name, email, login_id, password_hash, role, avatar, status, created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.LoginID, &u.PasswordHash,
		&u.Role, &u.Avatar, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (
			id, name, email, login_id, password_hash, role, avatar, status, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, q,
		id, user.Name, user.Email, user.LoginID, user.PasswordHash,
		user.Role, user.Avatar, user.Status, now, now,
	)
	if err != nil {
		return translatePQ(err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, q, id))
}

func (r *userRepository) FindByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE login_id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, q, loginID))
}

func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	const q = `
		UPDATE users SET
			name=$1, email=$2, login_id=$3, password_hash=$4,
			role=$5, avatar=$6, status=$7, updated_at=$8
		WHERE id=$9
	`
	user.UpdatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, q,
		user.Name, user.Email, user.LoginID, user.PasswordHash,
		user.Role, user.Avatar, user.Status, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return translatePQ(err)
	}
	return expectOneRow(res)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}
