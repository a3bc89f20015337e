package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"roomops-data/internal/domain"
)

// PostgresWorkOrdersRepo 工单库 PostgreSQL 实现
type PostgresWorkOrdersRepo struct {
	db *sql.DB
}

func NewPostgresWorkOrdersRepo(db *sql.DB) *PostgresWorkOrdersRepo {
	return &PostgresWorkOrdersRepo{db: db}
}

const workOrderColumns = `
	work_order_id::text,
	title,
	priority,
	status,
	room_id::text,
	assignee_id::text,
	sla_due_at,
	created_at`

func scanWorkOrder(scanner interface{ Scan(...any) error }) (*domain.WorkOrder, error) {
	var wo domain.WorkOrder
	if err := scanner.Scan(
		&wo.WorkOrderID,
		&wo.Title,
		&wo.Priority,
		&wo.Status,
		&wo.RoomID,
		&wo.AssigneeID,
		&wo.SLADueAt,
		&wo.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *PostgresWorkOrdersRepo) ListWorkOrders(ctx context.Context) ([]domain.WorkOrder, error) {
	q := `SELECT ` + workOrderColumns + ` FROM work_orders ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WorkOrder{}
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *wo)
	}
	return out, rows.Err()
}

func (r *PostgresWorkOrdersRepo) CreateWorkOrder(ctx context.Context, wo *domain.WorkOrder) (*domain.WorkOrder, error) {
	if wo.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	priority := wo.Priority
	if priority == "" {
		priority = "normal"
	}
	status := wo.Status
	if status == "" {
		status = domain.WorkOrderStatusPending
	}
	q := `
		INSERT INTO work_orders (title, priority, status, room_id, assignee_id, sla_due_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + workOrderColumns
	created, err := scanWorkOrder(r.db.QueryRowContext(ctx, q,
		wo.Title, priority, status, wo.RoomID, wo.AssigneeID, wo.SLADueAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}
	return created, nil
}

func (r *PostgresWorkOrdersRepo) UpdateWorkOrder(ctx context.Context, workOrderID string, payload map[string]any) error {
	if workOrderID == "" {
		return fmt.Errorf("work_order_id is required")
	}
	allowed := []string{"status", "priority", "assignee_id", "sla_due_at", "title"}
	sets := []string{}
	args := []any{workOrderID}
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
	q := `UPDATE work_orders SET ` + strings.Join(sets, ", ") + ` WHERE work_order_id = $1`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("failed to update work order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work order %s not found", workOrderID)
	}
	return nil
}
