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

// MemoryTasksRepo 内存任务库
type MemoryTasksRepo struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

func NewMemoryTasksRepo() *MemoryTasksRepo {
	return &MemoryTasksRepo{tasks: map[string]domain.Task{}}
}

func (r *MemoryTasksRepo) ListTasks(_ context.Context, includeDeleted bool) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if !includeDeleted && t.IsDeleted {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (r *MemoryTasksRepo) GetTask(_ context.Context, taskID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s not found", taskID)
	}
	return &t, nil
}

func (r *MemoryTasksRepo) CreateTask(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.TaskID == "" {
		task.TaskID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	task.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	r.tasks[task.TaskID] = *task
	return task, nil
}

// UpdateTask 部分更新（payload 键与 db 列名对齐：status/started_at/paused_at/finished_at/assignee_id）
func (r *MemoryTasksRepo) UpdateTask(_ context.Context, taskID string, payload map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok {
		return fmt.Errorf("task %s not found", taskID)
	}
	if v, ok := payload["status"].(string); ok && v != "" {
		t.Status = v
	}
	if v, ok := payload["assignee_id"].(string); ok && v != "" {
		t.AssigneeID = sql.NullString{String: v, Valid: true}
	}
	if v, ok := payload["started_at"].(time.Time); ok {
		t.StartedAt = sql.NullTime{Time: v, Valid: true}
	}
	if v, ok := payload["paused_at"].(time.Time); ok {
		t.PausedAt = sql.NullTime{Time: v, Valid: true}
	}
	if v, ok := payload["finished_at"].(time.Time); ok {
		t.FinishedAt = sql.NullTime{Time: v, Valid: true}
	}
	r.tasks[taskID] = t
	return nil
}

func (r *MemoryTasksRepo) MarkTaskDeleted(_ context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok {
		return fmt.Errorf("task %s not found", taskID)
	}
	t.IsDeleted = true
	r.tasks[taskID] = t
	return nil
}
