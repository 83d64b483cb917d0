package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoomAssignmentRepository persists day-long room bindings.
type RoomAssignmentRepository interface {
	Create(ctx context.Context, a *RoomStaffAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, roomID, poolID uuid.UUID) (bool, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*RoomStaffAssignment, error)
	ListByDate(ctx context.Context, date time.Time) ([]*RoomStaffAssignment, error)
}

// SurgeryAssignmentRepository persists per-surgery bindings.
type SurgeryAssignmentRepository interface {
	Create(ctx context.Context, a *PlannedStaffAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, surgeryID, poolID uuid.UUID) (bool, error)
	ListBySurgery(ctx context.Context, surgeryID uuid.UUID) ([]*PlannedStaffAssignment, error)
}
