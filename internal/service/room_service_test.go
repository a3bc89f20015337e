package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roomops-data/internal/domain"
	"roomops-data/internal/notify"
	"roomops-data/internal/repository"
)

func newRoomServiceForTest(t *testing.T) (RoomService, *recordingNotifier) {
	t.Helper()
	rec := &recordingNotifier{}
	return NewRoomService(repository.NewMemoryRoomsRepo(), rec, zap.NewNop()), rec
}

func TestUpdateRoomStatus_PublishesChangeEvent(t *testing.T) {
	svc, rec := newRoomServiceForTest(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, &domain.Room{RoomNumber: "101", Status: domain.RoomStatusReady})
	require.NoError(t, err)

	updated, err := svc.UpdateRoomStatus(ctx, room.RoomID, domain.RoomStatusDirty)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusDirty, updated.Status)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, notify.EventRoomStatusChanged, ev.Type)
	assert.Equal(t, room.RoomID, ev.Data["room_id"])
	assert.Equal(t, "101", ev.Data["room_number"])
	assert.Equal(t, string(domain.RoomStatusReady), ev.Data["from"])
	assert.Equal(t, string(domain.RoomStatusDirty), ev.Data["to"])
}

func TestUpdateRoomStatus_SameStatusIsNoop(t *testing.T) {
	svc, rec := newRoomServiceForTest(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, &domain.Room{RoomNumber: "102", Status: domain.RoomStatusClean})
	require.NoError(t, err)

	same, err := svc.UpdateRoomStatus(ctx, room.RoomID, domain.RoomStatusClean)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusClean, same.Status)
	assert.Empty(t, rec.events)
}

func TestUpdateRoomStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newRoomServiceForTest(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, &domain.Room{RoomNumber: "103"})
	require.NoError(t, err)

	_, err = svc.UpdateRoomStatus(ctx, room.RoomID, domain.RoomStatus("vacuuming"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid room status")
}

func TestCreateRoom_Validation(t *testing.T) {
	svc, _ := newRoomServiceForTest(t)
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, &domain.Room{})
	assert.Error(t, err)

	_, err = svc.CreateRoom(ctx, &domain.Room{RoomNumber: "104", Status: domain.RoomStatus("bogus")})
	assert.Error(t, err)
}
