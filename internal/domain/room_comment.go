package domain

import (
	"database/sql"
)

// RoomComment 客房留言领域模型（对应 room_comments 表）
// 日结引擎对每个房态实际变化的房间写入一条系统审计留言，从不删除留言
type RoomComment struct {
	CommentID  string         `db:"comment_id"`
	RoomID     string         `db:"room_id"`
	AuthorID   string         `db:"author_id"`
	Content    string         `db:"content"`
	Priority   sql.NullString `db:"priority"`    // nullable
	IsResolved bool           `db:"is_resolved"` // NOT NULL, default false
	CreatedAt  sql.NullTime   `db:"created_at"`
}

func (c RoomComment) ToJSON() map[string]any {
	m := map[string]any{
		"comment_id":  c.CommentID,
		"room_id":     c.RoomID,
		"author_id":   c.AuthorID,
		"content":     c.Content,
		"is_resolved": c.IsResolved,
		// 前端据此把系统留言渲染为系统操作者
		"is_system": c.AuthorID == SystemUserID,
	}
	if c.Priority.Valid {
		m["priority"] = c.Priority.String
	}
	if c.CreatedAt.Valid {
		m["created_at"] = c.CreatedAt.Time
	}
	return m
}
