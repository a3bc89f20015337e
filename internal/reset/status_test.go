package reset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomops-data/internal/domain"
)

func TestNextStatus_TotalOverEnum(t *testing.T) {
	for _, s := range domain.AllRoomStatuses {
		next := NextStatus(s)
		assert.True(t, domain.ValidRoomStatus(next), "status %s mapped to invalid %s", s, next)
	}
}

func TestNextStatus_Policy(t *testing.T) {
	cases := []struct {
		current  domain.RoomStatus
		expected domain.RoomStatus
	}{
		{domain.RoomStatusDirty, domain.RoomStatusDirty},
		{domain.RoomStatusClean, domain.RoomStatusDirty},
		{domain.RoomStatusReady, domain.RoomStatusDirty},
		{domain.RoomStatusCleanInspected, domain.RoomStatusDirty},
		{domain.RoomStatusRoll, domain.RoomStatusRoll},
		{domain.RoomStatusOut, domain.RoomStatusOut},
		{domain.RoomStatusMaintenance, domain.RoomStatusMaintenance},
		{domain.RoomStatusOutOfOrder, domain.RoomStatusOutOfOrder},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, NextStatus(c.current), "from %s", c.current)
	}
}

// 粘滞状态重复应用日结保持不动
func TestNextStatus_StickyIdempotent(t *testing.T) {
	sticky := []domain.RoomStatus{
		domain.RoomStatusRoll,
		domain.RoomStatusOut,
		domain.RoomStatusMaintenance,
		domain.RoomStatusOutOfOrder,
	}
	for _, s := range sticky {
		assert.Equal(t, s, NextStatus(NextStatus(s)), "sticky %s drifted", s)
	}
}

func TestNextStatus_UnknownFallsBackToDirty(t *testing.T) {
	assert.Equal(t, domain.RoomStatusDirty, NextStatus(domain.RoomStatus("bogus")))
}
