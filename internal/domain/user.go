package domain

import (
	"database/sql"
)

// SystemUserID 系统保留身份（日结审计留言的 author_id）
// 与 tenants/users 的 seed 约定一致：前端需把该 id 渲染为系统操作者
const SystemUserID = "00000000-0000-0000-0000-000000000001"

// User 用户领域模型（对应 users 表）
type User struct {
	UserID    string         `db:"user_id"`
	Nickname  sql.NullString `db:"nickname"` // nullable
	Role      string         `db:"role"`     // NOT NULL
	Status    string         `db:"status"`   // nullable, default 'active'
	CreatedAt sql.NullTime   `db:"created_at"`
}
