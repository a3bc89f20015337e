package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/repository"
)

// WorkOrderHandler 工单 Handler（直连 repo 的薄 CRUD，无业务规则）
type WorkOrderHandler struct {
	workOrders repository.WorkOrdersRepo
	logger     *zap.Logger
}

// NewWorkOrderHandler 创建工单 Handler
func NewWorkOrderHandler(workOrders repository.WorkOrdersRepo, logger *zap.Logger) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrders: workOrders,
		logger:     logger,
	}
}

// ServeCollection /ops/api/v1/work-orders
func (h *WorkOrderHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListWorkOrders(w, r)
	case http.MethodPost:
		h.CreateWorkOrder(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ServeItem /ops/api/v1/work-orders/{id}
func (h *WorkOrderHandler) ServeItem(w http.ResponseWriter, r *http.Request) {
	workOrderID := pathTail(r.URL.Path, "/ops/api/v1/work-orders/")
	if workOrderID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.UpdateWorkOrder(w, r, workOrderID)
}

func (h *WorkOrderHandler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.workOrders.ListWorkOrders(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	items := make([]map[string]any, 0, len(orders))
	for _, wo := range orders {
		items = append(items, wo.ToJSON())
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

func (h *WorkOrderHandler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title      string     `json:"title"`
		Priority   string     `json:"priority"`
		RoomID     string     `json:"room_id"`
		AssigneeID string     `json:"assignee_id"`
		SLADueAt   *time.Time `json:"sla_due_at"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	wo := &domain.WorkOrder{
		Title:      body.Title,
		Priority:   body.Priority,
		RoomID:     sql.NullString{String: body.RoomID, Valid: body.RoomID != ""},
		AssigneeID: sql.NullString{String: body.AssigneeID, Valid: body.AssigneeID != ""},
	}
	if body.SLADueAt != nil {
		wo.SLADueAt = sql.NullTime{Time: *body.SLADueAt, Valid: true}
	}
	created, err := h.workOrders.CreateWorkOrder(r.Context(), wo)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(created.ToJSON()))
}

func (h *WorkOrderHandler) UpdateWorkOrder(w http.ResponseWriter, r *http.Request, workOrderID string) {
	var body map[string]any
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if err := h.workOrders.UpdateWorkOrder(r.Context(), workOrderID, body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}
