package staffpool

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

// -- Staff directory --

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository { return &userRepoPG{pool: pool} }

const userCols = `id, hospital_id, name, email, role, created_at`

func scanUser(row pgx.Row) (*StaffUser, error) {
	var u StaffUser
	err := row.Scan(&u.ID, &u.HospitalID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *StaffUser) error {
	u.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO staff_user (id, hospital_id, name, email, role)
		VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.HospitalID, u.Name, u.Email, u.Role)
	return err
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*StaffUser, error) {
	return scanUser(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userCols+` FROM staff_user WHERE id = $1`, id))
}

func (r *userRepoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*StaffUser, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+userCols+` FROM staff_user WHERE hospital_id = $1 ORDER BY name`, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*StaffUser
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, nil
}

// -- Daily pool --

type poolRepoPG struct{ pool *pgxpool.Pool }

func NewPoolRepoPG(pool *pgxpool.Pool) PoolRepository { return &poolRepoPG{pool: pool} }

const entryCols = `id, hospital_id, date, name, role, user_id, created_at`

func scanEntry(row pgx.Row) (*PoolEntry, error) {
	var e PoolEntry
	err := row.Scan(&e.ID, &e.HospitalID, &e.Date, &e.Name, &e.Role, &e.UserID, &e.CreatedAt)
	return &e, err
}

func (r *poolRepoPG) Create(ctx context.Context, e *PoolEntry) error {
	e.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO staff_pool_entry (id, hospital_id, date, name, role, user_id)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.HospitalID, e.Date, e.Name, e.Role, e.UserID)
	return err
}

func (r *poolRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PoolEntry, error) {
	return scanEntry(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+entryCols+` FROM staff_pool_entry WHERE id = $1`, id))
}

func (r *poolRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM staff_pool_entry WHERE id = $1`, id)
	return err
}

func (r *poolRepoPG) ListByDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*PoolEntry, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+entryCols+` FROM staff_pool_entry
		WHERE hospital_id = $1 AND date = $2
		ORDER BY role, name`, hospitalID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PoolEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *poolRepoPG) ExistsForUserAndDate(ctx context.Context, hospitalID uuid.UUID, userID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM staff_pool_entry
			WHERE hospital_id = $1 AND user_id = $2 AND date = $3
		)`, hospitalID, userID, date).Scan(&exists)
	return exists, err
}

func (r *poolRepoPG) RelinkUser(ctx context.Context, hospitalID uuid.UUID, name string, userID uuid.UUID) (int, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE staff_pool_entry SET user_id = $3
		WHERE hospital_id = $1 AND LOWER(name) = LOWER($2) AND user_id IS NULL`,
		hospitalID, name, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
