package repository

import (
	"context"
	"database/sql"
	"fmt"

	"roomops-data/internal/domain"
)

// PostgresRoomsRepo 客房库 PostgreSQL 实现
type PostgresRoomsRepo struct {
	db *sql.DB
}

func NewPostgresRoomsRepo(db *sql.DB) *PostgresRoomsRepo {
	return &PostgresRoomsRepo{db: db}
}

const roomColumns = `
	room_id::text,
	room_number,
	room_type,
	floor,
	square_ft,
	status,
	created_at,
	updated_at`

func scanRoom(scanner interface{ Scan(...any) error }) (*domain.Room, error) {
	var r domain.Room
	if err := scanner.Scan(
		&r.RoomID,
		&r.RoomNumber,
		&r.RoomType,
		&r.Floor,
		&r.SquareFt,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PostgresRoomsRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *room)
	}
	return out, rows.Err()
}

func (r *PostgresRoomsRepo) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	if roomID == "" {
		return nil, fmt.Errorf("room_id is required")
	}
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE room_id = $1`
	room, err := scanRoom(r.db.QueryRowContext(ctx, q, roomID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("room %s not found", roomID)
		}
		return nil, err
	}
	return room, nil
}

func (r *PostgresRoomsRepo) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if room.RoomNumber == "" {
		return nil, fmt.Errorf("room_number is required")
	}
	status := room.Status
	if status == "" {
		status = domain.RoomStatusDirty
	}
	q := `
		INSERT INTO rooms (room_number, room_type, floor, square_ft, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + roomColumns
	created, err := scanRoom(r.db.QueryRowContext(ctx, q,
		room.RoomNumber, room.RoomType, room.Floor, room.SquareFt, status))
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return created, nil
}

func (r *PostgresRoomsRepo) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) error {
	if roomID == "" {
		return fmt.Errorf("room_id is required")
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET status = $2, updated_at = NOW() WHERE room_id = $1`,
		roomID, status)
	if err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("room %s not found", roomID)
	}
	return nil
}
