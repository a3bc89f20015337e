package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roomops-data/internal/domain"
)

// PostgresRoomCommentsRepo 客房留言库 PostgreSQL 实现（只增不删）
type PostgresRoomCommentsRepo struct {
	db *sql.DB
}

func NewPostgresRoomCommentsRepo(db *sql.DB) *PostgresRoomCommentsRepo {
	return &PostgresRoomCommentsRepo{db: db}
}

const commentColumns = `
	comment_id::text,
	room_id::text,
	author_id::text,
	content,
	priority,
	is_resolved,
	created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*domain.RoomComment, error) {
	var c domain.RoomComment
	if err := scanner.Scan(
		&c.CommentID,
		&c.RoomID,
		&c.AuthorID,
		&c.Content,
		&c.Priority,
		&c.IsResolved,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRoomCommentsRepo) ListRoomComments(ctx context.Context) ([]domain.RoomComment, error) {
	q := `SELECT ` + commentColumns + ` FROM room_comments ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RoomComment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PostgresRoomCommentsRepo) CreateRoomComment(ctx context.Context, c *domain.RoomComment) (*domain.RoomComment, error) {
	if c.RoomID == "" {
		return nil, fmt.Errorf("room_id is required")
	}
	if c.AuthorID == "" {
		return nil, fmt.Errorf("author_id is required")
	}
	q := `
		INSERT INTO room_comments (room_id, author_id, content, priority)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	created, err := scanComment(r.db.QueryRowContext(ctx, q,
		c.RoomID, c.AuthorID, c.Content, c.Priority))
	if err != nil {
		return nil, fmt.Errorf("failed to create room comment: %w", err)
	}
	return created, nil
}

func (r *PostgresRoomCommentsRepo) ResolveRoomComment(ctx context.Context, commentID string) error {
	if commentID == "" {
		return fmt.Errorf("comment_id is required")
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_comments SET is_resolved = true WHERE comment_id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to resolve room comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("comment %s not found", commentID)
	}
	return nil
}
