package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/repository"
)

// CommentHandler 客房留言 Handler
type CommentHandler struct {
	comments repository.RoomCommentsRepo
	logger   *zap.Logger
}

// NewCommentHandler 创建客房留言 Handler
func NewCommentHandler(comments repository.RoomCommentsRepo, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		logger:   logger,
	}
}

// ServeCollection /ops/api/v1/comments（?room_id= 过滤）
func (h *CommentHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListComments(w, r)
	case http.MethodPost:
		h.CreateComment(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ServeItem /ops/api/v1/comments/{id}/resolve
func (h *CommentHandler) ServeItem(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if strings.HasSuffix(path, "/resolve") && r.Method == http.MethodPost {
		commentID := pathTail(strings.TrimSuffix(path, "/resolve"), "/ops/api/v1/comments/")
		if commentID == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.ResolveComment(w, r, commentID)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	all, err := h.comments.ListRoomComments(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	roomID := r.URL.Query().Get("room_id")
	items := make([]map[string]any, 0, len(all))
	for _, c := range all {
		if roomID != "" && c.RoomID != roomID {
			continue
		}
		items = append(items, c.ToJSON())
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID   string `json:"room_id"`
		AuthorID string `json:"author_id"`
		Content  string `json:"content"`
		Priority string `json:"priority"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	c := &domain.RoomComment{
		RoomID:   body.RoomID,
		AuthorID: body.AuthorID,
		Content:  body.Content,
		Priority: sql.NullString{String: body.Priority, Valid: body.Priority != ""},
	}
	created, err := h.comments.CreateRoomComment(r.Context(), c)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(created.ToJSON()))
}

func (h *CommentHandler) ResolveComment(w http.ResponseWriter, r *http.Request, commentID string) {
	if err := h.comments.ResolveRoomComment(r.Context(), commentID); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}
