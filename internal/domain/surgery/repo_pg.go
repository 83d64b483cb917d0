package surgery

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

const surgeryCols = `id, hospital_id, patient_id, room_id, planned_start, actual_end,
	planned_surgery, surgeon, surgeon_id, status, notes, created_at, updated_at`

func scanSurgery(row pgx.Row) (*Surgery, error) {
	var s Surgery
	err := row.Scan(&s.ID, &s.HospitalID, &s.PatientID, &s.RoomID, &s.PlannedStart, &s.ActualEnd,
		&s.PlannedSurgery, &s.Surgeon, &s.SurgeonID, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Surgery) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO surgery (id, hospital_id, patient_id, room_id, planned_start, actual_end,
			planned_surgery, surgeon, surgeon_id, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		s.ID, s.HospitalID, s.PatientID, s.RoomID, s.PlannedStart, s.ActualEnd,
		s.PlannedSurgery, s.Surgeon, s.SurgeonID, s.Status, s.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	return scanSurgery(r.conn(ctx).QueryRow(ctx, `SELECT `+surgeryCols+` FROM surgery WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, s *Surgery) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE surgery SET room_id=$2, planned_start=$3, actual_end=$4,
			planned_surgery=$5, surgeon=$6, surgeon_id=$7, status=$8, notes=$9, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.RoomID, s.PlannedStart, s.ActualEnd,
		s.PlannedSurgery, s.Surgeon, s.SurgeonID, s.Status, s.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM surgery WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Surgery, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+surgeryCols+` FROM surgery
		WHERE hospital_id = $1 AND planned_start BETWEEN $2 AND $3
		ORDER BY planned_start`, hospitalID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Surgery
	for rows.Next() {
		s, err := scanSurgery(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

// -- Time markers --

const markerCols = `id, surgery_id, code, label, time, position`

func (r *repoPG) UpsertMarker(ctx context.Context, m *TimeMarker) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO time_marker (id, surgery_id, code, label, time, position)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (surgery_id, code) DO UPDATE SET label=$4, time=$5, position=$6`,
		m.ID, m.SurgeryID, m.Code, m.Label, m.Time, m.Position)
	return err
}

func (r *repoPG) ListMarkers(ctx context.Context, surgeryID uuid.UUID) ([]*TimeMarker, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+markerCols+` FROM time_marker WHERE surgery_id = $1 ORDER BY position`, surgeryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TimeMarker
	for rows.Next() {
		var m TimeMarker
		if err := rows.Scan(&m.ID, &m.SurgeryID, &m.Code, &m.Label, &m.Time, &m.Position); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, nil
}

func (r *repoPG) ListMarkersByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) (map[uuid.UUID][]*TimeMarker, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT m.id, m.surgery_id, m.code, m.label, m.time, m.position
		FROM time_marker m
		JOIN surgery s ON s.id = m.surgery_id
		WHERE s.hospital_id = $1 AND s.planned_start BETWEEN $2 AND $3
		ORDER BY m.surgery_id, m.position`, hospitalID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[uuid.UUID][]*TimeMarker)
	for rows.Next() {
		var m TimeMarker
		if err := rows.Scan(&m.ID, &m.SurgeryID, &m.Code, &m.Label, &m.Time, &m.Position); err != nil {
			return nil, err
		}
		result[m.SurgeryID] = append(result[m.SurgeryID], &m)
	}
	return result, nil
}
