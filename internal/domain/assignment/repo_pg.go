package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orplan/orplan/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// -- Room assignments --

type roomRepoPG struct{ pool *pgxpool.Pool }

func NewRoomRepoPG(pool *pgxpool.Pool) RoomAssignmentRepository { return &roomRepoPG{pool: pool} }

func (r *roomRepoPG) Create(ctx context.Context, a *RoomStaffAssignment) error {
	a.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO room_staff_assignment (id, room_id, pool_id, date)
		VALUES ($1,$2,$3,$4)`,
		a.ID, a.RoomID, a.PoolID, a.Date)
	return err
}

func (r *roomRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM room_staff_assignment WHERE id = $1`, id)
	return err
}

func (r *roomRepoPG) Exists(ctx context.Context, roomID, poolID uuid.UUID) (bool, error) {
	var exists bool
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM room_staff_assignment WHERE room_id = $1 AND pool_id = $2
		)`, roomID, poolID).Scan(&exists)
	return exists, err
}

func (r *roomRepoPG) listWhere(ctx context.Context, where string, args ...interface{}) ([]*RoomStaffAssignment, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, room_id, pool_id, date, created_at
		FROM room_staff_assignment WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*RoomStaffAssignment
	for rows.Next() {
		var a RoomStaffAssignment
		if err := rows.Scan(&a.ID, &a.RoomID, &a.PoolID, &a.Date, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, nil
}

func (r *roomRepoPG) ListByRoom(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*RoomStaffAssignment, error) {
	return r.listWhere(ctx, `room_id = $1 AND date = $2`, roomID, date)
}

func (r *roomRepoPG) ListByDate(ctx context.Context, date time.Time) ([]*RoomStaffAssignment, error) {
	return r.listWhere(ctx, `date = $1`, date)
}

// -- Surgery assignments --

type surgeryRepoPG struct{ pool *pgxpool.Pool }

func NewSurgeryRepoPG(pool *pgxpool.Pool) SurgeryAssignmentRepository {
	return &surgeryRepoPG{pool: pool}
}

func (r *surgeryRepoPG) Create(ctx context.Context, a *PlannedStaffAssignment) error {
	a.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO planned_staff_assignment (id, surgery_id, pool_id)
		VALUES ($1,$2,$3)`,
		a.ID, a.SurgeryID, a.PoolID)
	return err
}

func (r *surgeryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM planned_staff_assignment WHERE id = $1`, id)
	return err
}

func (r *surgeryRepoPG) Exists(ctx context.Context, surgeryID, poolID uuid.UUID) (bool, error) {
	var exists bool
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM planned_staff_assignment WHERE surgery_id = $1 AND pool_id = $2
		)`, surgeryID, poolID).Scan(&exists)
	return exists, err
}

func (r *surgeryRepoPG) ListBySurgery(ctx context.Context, surgeryID uuid.UUID) ([]*PlannedStaffAssignment, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, surgery_id, pool_id, created_at
		FROM planned_staff_assignment WHERE surgery_id = $1`, surgeryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PlannedStaffAssignment
	for rows.Next() {
		var a PlannedStaffAssignment
		if err := rows.Scan(&a.ID, &a.SurgeryID, &a.PoolID, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, nil
}
