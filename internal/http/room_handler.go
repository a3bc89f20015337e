package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/service"
)

// RoomHandler 客房看板 Handler
type RoomHandler struct {
	roomService service.RoomService
	logger      *zap.Logger
}

// NewRoomHandler 创建客房看板 Handler
func NewRoomHandler(roomService service.RoomService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		logger:      logger,
	}
}

// ServeCollection /ops/api/v1/rooms
func (h *RoomHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListRooms(w, r)
	case http.MethodPost:
		h.CreateRoom(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ServeItem /ops/api/v1/rooms/{id} 与 /ops/api/v1/rooms/{id}/status
func (h *RoomHandler) ServeItem(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, "/status") && r.Method == http.MethodPut:
		roomID := pathTail(strings.TrimSuffix(path, "/status"), "/ops/api/v1/rooms/")
		if roomID == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.UpdateStatus(w, r, roomID)
	case r.Method == http.MethodGet:
		roomID := pathTail(path, "/ops/api/v1/rooms/")
		if roomID == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.GetRoom(w, r, roomID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	items := make([]map[string]any, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, room.ToJSON())
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items, "total": len(items)}))
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request, roomID string) {
	room, err := h.roomService.GetRoom(r.Context(), roomID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(room.ToJSON()))
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomNumber string `json:"room_number"`
		RoomType   string `json:"room_type"`
		Floor      string `json:"floor"`
		SquareFt   int64  `json:"square_ft"`
		Status     string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	room := &domain.Room{
		RoomNumber: body.RoomNumber,
		RoomType:   sql.NullString{String: body.RoomType, Valid: body.RoomType != ""},
		Floor:      sql.NullString{String: body.Floor, Valid: body.Floor != ""},
		SquareFt:   sql.NullInt64{Int64: body.SquareFt, Valid: body.SquareFt > 0},
		Status:     domain.RoomStatus(body.Status),
	}
	created, err := h.roomService.CreateRoom(r.Context(), room)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(created.ToJSON()))
}

func (h *RoomHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, roomID string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	room, err := h.roomService.UpdateRoomStatus(r.Context(), roomID, domain.RoomStatus(body.Status))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(room.ToJSON()))
}
