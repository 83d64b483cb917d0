package staffpool

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository is the persistence contract for the staff directory.
type UserRepository interface {
	Create(ctx context.Context, u *StaffUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*StaffUser, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*StaffUser, error)
}

// PoolRepository is the persistence contract for daily pool entries.
type PoolRepository interface {
	Create(ctx context.Context, e *PoolEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*PoolEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*PoolEntry, error)
	// ExistsForUserAndDate reports whether the directory user already has
	// a pool entry on the date.
	ExistsForUserAndDate(ctx context.Context, hospitalID uuid.UUID, userID uuid.UUID, date time.Time) (bool, error)
	// RelinkUser sets user_id on every entry of the hospital whose name
	// matches (case-insensitive) and has no user yet.
	RelinkUser(ctx context.Context, hospitalID uuid.UUID, name string, userID uuid.UUID) (int, error)
}
