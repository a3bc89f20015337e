package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/service"
)

// TaskHandler 任务 Handler（生命周期操作 + panic alert）
type TaskHandler struct {
	taskService service.TaskService
	logger      *zap.Logger
}

// NewTaskHandler 创建任务 Handler
func NewTaskHandler(taskService service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ServeCollection /ops/api/v1/tasks
func (h *TaskHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListTasks(w, r)
	case http.MethodPost:
		h.CreateTask(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ServeItem /ops/api/v1/tasks/{id} 与 /ops/api/v1/tasks/{id}/{start|pause|complete|fail}
func (h *TaskHandler) ServeItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/ops/api/v1/tasks/")
	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1 && parts[0] != "" && r.Method == http.MethodGet:
		h.GetTask(w, r, parts[0])
	case len(parts) == 2 && parts[0] != "" && r.Method == http.MethodPost:
		h.Lifecycle(w, r, parts[0], parts[1])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	items := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, t.ToJSON())
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request, taskID string) {
	t, err := h.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(t.ToJSON()))
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		TaskType    string `json:"task_type"`
		RoomID      string `json:"room_id"`
		AssigneeID  string `json:"assignee_id"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	task := &domain.Task{
		Title:       body.Title,
		Description: sql.NullString{String: body.Description, Valid: body.Description != ""},
		TaskType:    body.TaskType,
		RoomID:      sql.NullString{String: body.RoomID, Valid: body.RoomID != ""},
		AssigneeID:  sql.NullString{String: body.AssigneeID, Valid: body.AssigneeID != ""},
	}
	created, err := h.taskService.CreateTask(r.Context(), task)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(created.ToJSON()))
}

// Lifecycle 任务生命周期操作分发
func (h *TaskHandler) Lifecycle(w http.ResponseWriter, r *http.Request, taskID, action string) {
	var (
		t   *domain.Task
		err error
	)
	switch action {
	case "start":
		t, err = h.taskService.StartTask(r.Context(), taskID)
	case "pause":
		t, err = h.taskService.PauseTask(r.Context(), taskID)
	case "complete":
		t, err = h.taskService.CompleteTask(r.Context(), taskID)
	case "fail":
		t, err = h.taskService.FailTask(r.Context(), taskID)
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(t.ToJSON()))
}

// CreatePanicAlert 一键报警入口
func (h *TaskHandler) CreatePanicAlert(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID      string `json:"room_id"`
		Description string `json:"description"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	created, err := h.taskService.CreatePanicAlert(r.Context(), body.RoomID, body.Description)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(created.ToJSON()))
}
