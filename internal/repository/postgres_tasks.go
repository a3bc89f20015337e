package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"roomops-data/internal/domain"
)

// PostgresTasksRepo 任务库 PostgreSQL 实现
type PostgresTasksRepo struct {
	db *sql.DB
}

func NewPostgresTasksRepo(db *sql.DB) *PostgresTasksRepo {
	return &PostgresTasksRepo{db: db}
}

const taskColumns = `
	task_id::text,
	title,
	description,
	task_type,
	status,
	room_id::text,
	assignee_id::text,
	started_at,
	paused_at,
	finished_at,
	is_deleted,
	created_at`

func scanTask(scanner interface{ Scan(...any) error }) (*domain.Task, error) {
	var t domain.Task
	if err := scanner.Scan(
		&t.TaskID,
		&t.Title,
		&t.Description,
		&t.TaskType,
		&t.Status,
		&t.RoomID,
		&t.AssigneeID,
		&t.StartedAt,
		&t.PausedAt,
		&t.FinishedAt,
		&t.IsDeleted,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTasksRepo) ListTasks(ctx context.Context, includeDeleted bool) ([]domain.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks`
	if !includeDeleted {
		q += ` WHERE is_deleted = false`
	}
	q += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *PostgresTasksRepo) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task_id is required")
	}
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`
	t, err := scanTask(r.db.QueryRowContext(ctx, q, taskID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %s not found", taskID)
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresTasksRepo) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if task.TaskType == "" {
		return nil, fmt.Errorf("task_type is required")
	}
	status := task.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	q := `
		INSERT INTO tasks (title, description, task_type, status, room_id, assignee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	created, err := scanTask(r.db.QueryRowContext(ctx, q,
		task.Title, task.Description, task.TaskType, status, task.RoomID, task.AssigneeID))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// UpdateTask 部分更新：payload 键与列名对齐，仅白名单内的列可更新
func (r *PostgresTasksRepo) UpdateTask(ctx context.Context, taskID string, payload map[string]any) error {
	if taskID == "" {
		return fmt.Errorf("task_id is required")
	}
	allowed := []string{"status", "assignee_id", "started_at", "paused_at", "finished_at", "title", "description"}
	sets := []string{}
	args := []any{taskID}
	argIdx := 2
	for _, col := range allowed {
		if v, ok := payload[col]; ok {
			sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
			args = append(args, v)
			argIdx++
		}
	}
	if len(sets) == 0 {
		return nil
	}
	q := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE task_id = $1`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", taskID)
	}
	return nil
}

func (r *PostgresTasksRepo) MarkTaskDeleted(ctx context.Context, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("task_id is required")
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_deleted = true WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to mark task deleted: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", taskID)
	}
	return nil
}
