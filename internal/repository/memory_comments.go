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

// MemoryRoomCommentsRepo 内存客房留言库（只增不删）
type MemoryRoomCommentsRepo struct {
	mu       sync.RWMutex
	comments map[string]domain.RoomComment
}

func NewMemoryRoomCommentsRepo() *MemoryRoomCommentsRepo {
	return &MemoryRoomCommentsRepo{comments: map[string]domain.RoomComment{}}
}

func (r *MemoryRoomCommentsRepo) ListRoomComments(_ context.Context) ([]domain.RoomComment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.RoomComment, 0, len(r.comments))
	for _, c := range r.comments {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (r *MemoryRoomCommentsRepo) CreateRoomComment(_ context.Context, c *domain.RoomComment) (*domain.RoomComment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.CommentID == "" {
		c.CommentID = uuid.NewString()
	}
	c.CreatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	r.comments[c.CommentID] = *c
	return c, nil
}

func (r *MemoryRoomCommentsRepo) ResolveRoomComment(_ context.Context, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[commentID]
	if !ok {
		return fmt.Errorf("comment %s not found", commentID)
	}
	c.IsResolved = true
	r.comments[commentID] = c
	return nil
}
