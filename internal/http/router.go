package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterResetRoutes 注册日结相关路由
func (r *Router) RegisterResetRoutes(h *ResetHandler) {
	r.Handle("/ops/api/v1/reset/run", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.RunManualReset(w, req)
	})
	r.Handle("/ops/api/v1/reset/latest", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetLatestReport(w, req)
	})
	r.Handle("/ops/api/v1/reset/latest/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ExportLatestReport(w, req)
	})
	r.Handle("/ops/api/v1/reset/reports", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ListReports(w, req)
	})
}

// RegisterRoomRoutes 注册客房看板路由
func (r *Router) RegisterRoomRoutes(h *RoomHandler) {
	r.Handle("/ops/api/v1/rooms", h.ServeCollection)
	r.Handle("/ops/api/v1/rooms/", h.ServeItem)
}

// RegisterTaskRoutes 注册任务与报警路由
func (r *Router) RegisterTaskRoutes(h *TaskHandler) {
	r.Handle("/ops/api/v1/tasks", h.ServeCollection)
	r.Handle("/ops/api/v1/tasks/", h.ServeItem)
	r.Handle("/ops/api/v1/alerts", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.CreatePanicAlert(w, req)
	})
}

// RegisterWorkOrderRoutes 注册工单路由
func (r *Router) RegisterWorkOrderRoutes(h *WorkOrderHandler) {
	r.Handle("/ops/api/v1/work-orders", h.ServeCollection)
	r.Handle("/ops/api/v1/work-orders/", h.ServeItem)
}

// RegisterCommentRoutes 注册客房留言路由
func (r *Router) RegisterCommentRoutes(h *CommentHandler) {
	r.Handle("/ops/api/v1/comments", h.ServeCollection)
	r.Handle("/ops/api/v1/comments/", h.ServeItem)
}

// pathTail 取 prefix 之后的单段 id；多段或为空返回 ""
func pathTail(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
