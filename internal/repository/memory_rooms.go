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

// MemoryRoomsRepo 内存客房库（DB 未就绪时的联测实现）
// - IDs 使用 uuid
// - 不做唯一约束校验（room_number 重复由上层保证）
type MemoryRoomsRepo struct {
	mu    sync.RWMutex
	rooms map[string]domain.Room
}

func NewMemoryRoomsRepo() *MemoryRoomsRepo {
	return &MemoryRoomsRepo{rooms: map[string]domain.Room{}}
}

func (r *MemoryRoomsRepo) ListRooms(_ context.Context) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	// 稳定输出顺序（房号升序），便于看板与测试
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r *MemoryRoomsRepo) GetRoom(_ context.Context, roomID string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("room %s not found", roomID)
	}
	return &room, nil
}

func (r *MemoryRoomsRepo) CreateRoom(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room.RoomID == "" {
		room.RoomID = uuid.NewString()
	}
	if room.Status == "" {
		room.Status = domain.RoomStatusDirty
	}
	now := time.Now()
	room.CreatedAt = sql.NullTime{Time: now, Valid: true}
	room.UpdatedAt = sql.NullTime{Time: now, Valid: true}
	r.rooms[room.RoomID] = *room
	return room, nil
}

func (r *MemoryRoomsRepo) UpdateRoomStatus(_ context.Context, roomID string, status domain.RoomStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %s not found", roomID)
	}
	room.Status = status
	room.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	r.rooms[roomID] = room
	return nil
}
