package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/notify"
	"roomops-data/internal/repository"
)

// RoomService 客房服务接口
type RoomService interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)
	CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error)
	UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (*domain.Room, error)
}

type roomService struct {
	rooms    repository.RoomsRepo
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(rooms repository.RoomsRepo, notifier notify.Notifier, logger *zap.Logger) RoomService {
	if notifier == nil {
		notifier = notify.NewNopNotifier()
	}
	return &roomService{
		rooms:    rooms,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *roomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.ListRooms(ctx)
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	if roomID == "" {
		return nil, fmt.Errorf("room_id is required")
	}
	return s.rooms.GetRoom(ctx, roomID)
}

func (s *roomService) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if room.RoomNumber == "" {
		return nil, fmt.Errorf("room_number is required")
	}
	if room.Status != "" && !domain.ValidRoomStatus(room.Status) {
		return nil, fmt.Errorf("invalid room status: %s", room.Status)
	}
	return s.rooms.CreateRoom(ctx, room)
}

// UpdateRoomStatus 员工改房态：校验枚举闭集并广播变更事件
func (s *roomService) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (*domain.Room, error) {
	if roomID == "" {
		return nil, fmt.Errorf("room_id is required")
	}
	if !domain.ValidRoomStatus(status) {
		return nil, fmt.Errorf("invalid room status: %s", status)
	}

	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	from := room.Status
	if from == status {
		return room, nil
	}

	if err := s.rooms.UpdateRoomStatus(ctx, roomID, status); err != nil {
		return nil, err
	}
	room.Status = status

	s.notifier.Publish(ctx, notify.RoomStatusChanged(room.RoomID, room.RoomNumber, string(from), string(status)))
	return room, nil
}
