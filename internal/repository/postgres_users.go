package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roomops-data/internal/domain"
)

// PostgresUsersRepo 用户库 PostgreSQL 实现（日结只读）
type PostgresUsersRepo struct {
	db *sql.DB
}

func NewPostgresUsersRepo(db *sql.DB) *PostgresUsersRepo {
	return &PostgresUsersRepo{db: db}
}

func (r *PostgresUsersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	q := `SELECT user_id::text, nickname, role, status, created_at FROM users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.UserID, &u.Nickname, &u.Role, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUsersRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	q := `SELECT user_id::text, nickname, role, status, created_at FROM users WHERE user_id = $1`
	var u domain.User
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&u.UserID, &u.Nickname, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s not found", userID)
		}
		return nil, err
	}
	return &u, nil
}
