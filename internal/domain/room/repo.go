package room

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for surgery rooms.
type Repository interface {
	Create(ctx context.Context, r *SurgeryRoom) error
	GetByID(ctx context.Context, id uuid.UUID) (*SurgeryRoom, error)
	Update(ctx context.Context, r *SurgeryRoom) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*SurgeryRoom, int, error)
	ListByType(ctx context.Context, hospitalID uuid.UUID, roomType string) ([]*SurgeryRoom, error)
}
