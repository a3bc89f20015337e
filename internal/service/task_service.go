package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/notify"
	"roomops-data/internal/repository"
)

// TaskService 任务服务接口（任务生命周期 + panic alert）
type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	StartTask(ctx context.Context, taskID string) (*domain.Task, error)
	PauseTask(ctx context.Context, taskID string) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID string) (*domain.Task, error)
	FailTask(ctx context.Context, taskID string) (*domain.Task, error)
	CreatePanicAlert(ctx context.Context, roomID, description string) (*domain.Task, error)
}

type taskService struct {
	tasks    repository.TasksRepo
	notifier notify.Notifier
	logger   *zap.Logger

	now func() time.Time
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(tasks repository.TasksRepo, notifier notify.Notifier, logger *zap.Logger) TaskService {
	if notifier == nil {
		notifier = notify.NewNopNotifier()
	}
	return &taskService{
		tasks:    tasks,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *taskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	// 默认列表视角不含软删除任务
	return s.tasks.ListTasks(ctx, false)
}

func (s *taskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task_id is required")
	}
	return s.tasks.GetTask(ctx, taskID)
}

func (s *taskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if task.TaskType == "" {
		return nil, fmt.Errorf("task_type is required")
	}
	return s.tasks.CreateTask(ctx, task)
}

// 生命周期迁移表：当前状态 -> 允许的操作
// pending/paused -> start; in_progress -> pause/complete/fail; paused -> complete/fail

func (s *taskService) StartTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.transition(ctx, taskID,
		[]string{domain.TaskStatusPending, domain.TaskStatusPaused},
		domain.TaskStatusInProgress,
		map[string]any{"started_at": s.now()})
}

func (s *taskService) PauseTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.transition(ctx, taskID,
		[]string{domain.TaskStatusInProgress},
		domain.TaskStatusPaused,
		map[string]any{"paused_at": s.now()})
}

func (s *taskService) CompleteTask(ctx context.Context, taskID string) (*domain.Task, error) {
	t, err := s.transition(ctx, taskID,
		[]string{domain.TaskStatusInProgress, domain.TaskStatusPaused},
		domain.TaskStatusCompleted,
		map[string]any{"finished_at": s.now()})
	if err != nil {
		return nil, err
	}
	roomID := ""
	if t.RoomID.Valid {
		roomID = t.RoomID.String
	}
	s.notifier.Publish(ctx, notify.TaskCompleted(t.TaskID, t.TaskType, roomID))
	return t, nil
}

func (s *taskService) FailTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.transition(ctx, taskID,
		[]string{domain.TaskStatusInProgress, domain.TaskStatusPaused},
		domain.TaskStatusFailed,
		map[string]any{"finished_at": s.now()})
}

func (s *taskService) transition(ctx context.Context, taskID string, from []string, to string, extra map[string]any) (*domain.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task_id is required")
	}
	t, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.IsDeleted {
		return nil, fmt.Errorf("task %s is archived", taskID)
	}
	ok := false
	for _, f := range from {
		if t.Status == f {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("task %s cannot move from %s to %s", taskID, t.Status, to)
	}

	payload := map[string]any{"status": to}
	for k, v := range extra {
		payload[k] = v
	}
	if err := s.tasks.UpdateTask(ctx, taskID, payload); err != nil {
		return nil, err
	}
	return s.tasks.GetTask(ctx, taskID)
}

// CreatePanicAlert 一键报警：生成 alert 类型高优先级任务并立即广播
func (s *taskService) CreatePanicAlert(ctx context.Context, roomID, description string) (*domain.Task, error) {
	if roomID == "" {
		return nil, fmt.Errorf("room_id is required")
	}
	task := &domain.Task{
		Title:       "Panic alert",
		Description: sql.NullString{String: description, Valid: description != ""},
		TaskType:    domain.TaskTypeAlert,
		Status:      domain.TaskStatusPending,
		RoomID:      sql.NullString{String: roomID, Valid: true},
	}
	created, err := s.tasks.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.logger.Warn("Panic alert raised",
		zap.String("task_id", created.TaskID),
		zap.String("room_id", roomID))
	return created, nil
}
