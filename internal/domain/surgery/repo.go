package surgery

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for surgeries and their time
// markers.
type Repository interface {
	Create(ctx context.Context, s *Surgery) error
	GetByID(ctx context.Context, id uuid.UUID) (*Surgery, error)
	Update(ctx context.Context, s *Surgery) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByRange returns surgeries whose planned start falls inside
	// [from, to], all statuses included.
	ListByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Surgery, error)

	UpsertMarker(ctx context.Context, m *TimeMarker) error
	ListMarkers(ctx context.Context, surgeryID uuid.UUID) ([]*TimeMarker, error)
	// ListMarkersByRange batch-loads the markers of every surgery whose
	// planned start falls inside [from, to], keyed by surgery.
	ListMarkersByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) (map[uuid.UUID][]*TimeMarker, error)
}
