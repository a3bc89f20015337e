package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"roomops-data/internal/domain"
)

// MemoryWorkOrdersRepo 内存工单库
type MemoryWorkOrdersRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.WorkOrder
}

func NewMemoryWorkOrdersRepo() *MemoryWorkOrdersRepo {
	return &MemoryWorkOrdersRepo{orders: map[string]domain.WorkOrder{}}
}

func (r *MemoryWorkOrdersRepo) ListWorkOrders(_ context.Context) ([]domain.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.WorkOrder, 0, len(r.orders))
	for _, wo := range r.orders {
		out = append(out, wo)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (r *MemoryWorkOrdersRepo) CreateWorkOrder(_ context.Context, wo *domain.WorkOrder) (*domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wo.WorkOrderID == "" {
		wo.WorkOrderID = uuid.NewString()
	}
	if wo.Priority == "" {
		wo.Priority = "normal"
	}
	if wo.Status == "" {
		wo.Status = domain.WorkOrderStatusPending
	}
	wo.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	r.orders[wo.WorkOrderID] = *wo
	return wo, nil
}

func (r *MemoryWorkOrdersRepo) UpdateWorkOrder(_ context.Context, workOrderID string, payload map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wo, ok := r.orders[workOrderID]
	if !ok {
		return fmt.Errorf("work order %s not found", workOrderID)
	}
	if v, ok := payload["status"].(string); ok && v != "" {
		wo.Status = v
	}
	if v, ok := payload["priority"].(string); ok && v != "" {
		wo.Priority = v
	}
	if v, ok := payload["assignee_id"].(string); ok && v != "" {
		wo.AssigneeID = sql.NullString{String: v, Valid: true}
	}
	r.orders[workOrderID] = wo
	return nil
}
