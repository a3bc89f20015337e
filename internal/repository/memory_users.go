package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"roomops-data/internal/domain"
)

// MemoryUsersRepo 内存用户库（联测用，可 seed 演示账号）
type MemoryUsersRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryUsersRepo() *MemoryUsersRepo {
	return &MemoryUsersRepo{users: map[string]domain.User{}}
}

// UpsertUser 联测 seed 入口（非接口方法）
func (r *MemoryUsersRepo) UpsertUser(userID, nickname, role string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID == "" {
		userID = uuid.NewString()
	}
	r.users[userID] = domain.User{
		UserID:    userID,
		Nickname:  sql.NullString{String: nickname, Valid: nickname != ""},
		Role:      role,
		Status:    "active",
		CreatedAt: sql.NullTime{Time: time.Now(), Valid: true},
	}
	return userID
}

func (r *MemoryUsersRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *MemoryUsersRepo) GetUser(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return &u, nil
}
