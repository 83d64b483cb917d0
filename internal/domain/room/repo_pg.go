package room

import (
	"context"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const roomCols = `id, hospital_id, name, room_type, is_active, created_at, updated_at`

func scanRoom(row pgx.Row) (*SurgeryRoom, error) {
	var sr SurgeryRoom
	err := row.Scan(&sr.ID, &sr.HospitalID, &sr.Name, &sr.RoomType, &sr.IsActive, &sr.CreatedAt, &sr.UpdatedAt)
	return &sr, err
}

func (r *repoPG) Create(ctx context.Context, sr *SurgeryRoom) error {
	sr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery_room (id, hospital_id, name, room_type, is_active)
		VALUES ($1,$2,$3,$4,$5)`,
		sr.ID, sr.HospitalID, sr.Name, sr.RoomType, sr.IsActive)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SurgeryRoom, error) {
	return scanRoom(r.conn(ctx).QueryRow(ctx, `SELECT `+roomCols+` FROM surgery_room WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, sr *SurgeryRoom) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery_room SET name=$2, room_type=$3, is_active=$4, updated_at=NOW()
		WHERE id = $1`,
		sr.ID, sr.Name, sr.RoomType, sr.IsActive)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgery_room WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*SurgeryRoom, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM surgery_room WHERE hospital_id = $1`, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+roomCols+` FROM surgery_room WHERE hospital_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SurgeryRoom
	for rows.Next() {
		sr, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sr)
	}
	return items, total, nil
}

func (r *repoPG) ListByType(ctx context.Context, hospitalID uuid.UUID, roomType string) ([]*SurgeryRoom, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+roomCols+` FROM surgery_room
		WHERE hospital_id = $1 AND room_type = $2 AND is_active
		ORDER BY name`, hospitalID, roomType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*SurgeryRoom
	for rows.Next() {
		sr, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, sr)
	}
	return items, nil
}
