package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type Service struct {
	rooms     RoomAssignmentRepository
	surgeries SurgeryAssignmentRepository
}

func NewService(rooms RoomAssignmentRepository, surgeries SurgeryAssignmentRepository) *Service {
	return &Service{rooms: rooms, surgeries: surgeries}
}

// AssignToRoom binds a pool entry to a room for the day. The same pair
// twice is a Conflict; the DB unique index backs up the pre-check.
func (s *Service) AssignToRoom(ctx context.Context, roomID, poolID uuid.UUID, date time.Time) (*RoomStaffAssignment, error) {
	if roomID == uuid.Nil || poolID == uuid.Nil {
		return nil, apperr.Validation("room_id and pool_id are required")
	}
	exists, err := s.rooms.Exists(ctx, roomID, poolID)
	if err != nil {
		return nil, apperr.Transport("assignment lookup failed", err)
	}
	if exists {
		return nil, apperr.Conflict("already assigned")
	}
	a := &RoomStaffAssignment{RoomID: roomID, PoolID: poolID, Date: truncateToDate(date)}
	if err := s.rooms.Create(ctx, a); err != nil {
		return nil, apperr.FromStore(err, "", "already assigned")
	}
	return a, nil
}

// AssignToSurgery binds a pool entry to one surgery, same conflict rule.
func (s *Service) AssignToSurgery(ctx context.Context, surgeryID, poolID uuid.UUID) (*PlannedStaffAssignment, error) {
	if surgeryID == uuid.Nil || poolID == uuid.Nil {
		return nil, apperr.Validation("surgery_id and pool_id are required")
	}
	exists, err := s.surgeries.Exists(ctx, surgeryID, poolID)
	if err != nil {
		return nil, apperr.Transport("assignment lookup failed", err)
	}
	if exists {
		return nil, apperr.Conflict("already assigned")
	}
	a := &PlannedStaffAssignment{SurgeryID: surgeryID, PoolID: poolID}
	if err := s.surgeries.Create(ctx, a); err != nil {
		return nil, apperr.FromStore(err, "", "already assigned")
	}
	return a, nil
}

// UnassignRoom removes a room assignment. A missing id is treated as
// already satisfied.
func (s *Service) UnassignRoom(ctx context.Context, id uuid.UUID) error {
	return s.rooms.Delete(ctx, id)
}

// UnassignSurgery removes a surgery assignment, idempotently.
func (s *Service) UnassignSurgery(ctx context.Context, id uuid.UUID) error {
	return s.surgeries.Delete(ctx, id)
}

func (s *Service) ListByRoom(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*RoomStaffAssignment, error) {
	return s.rooms.ListByRoom(ctx, roomID, truncateToDate(date))
}

func (s *Service) ListRoomAssignmentsByDate(ctx context.Context, date time.Time) ([]*RoomStaffAssignment, error) {
	return s.rooms.ListByDate(ctx, truncateToDate(date))
}

func (s *Service) ListBySurgery(ctx context.Context, surgeryID uuid.UUID) ([]*PlannedStaffAssignment, error) {
	return s.surgeries.ListBySurgery(ctx, surgeryID)
}

// Drop dispatches a staff drag to whichever branch of the target is set.
// An empty target is not an error; the gesture simply does nothing, the
// same as releasing a drag outside any drop zone.
func (s *Service) Drop(ctx context.Context, drag StaffDrag, target DropTarget) (*DropOutcome, error) {
	switch {
	case target.Room != nil:
		a, err := s.AssignToRoom(ctx, target.Room.RoomID, drag.PoolID, target.Room.Date)
		if err != nil {
			return nil, err
		}
		return &DropOutcome{Assigned: true, RoomID: &a.RoomID}, nil
	case target.Surgery != nil:
		a, err := s.AssignToSurgery(ctx, target.Surgery.SurgeryID, drag.PoolID)
		if err != nil {
			return nil, err
		}
		return &DropOutcome{Assigned: true, Surgery: &a.SurgeryID}, nil
	default:
		return &DropOutcome{Assigned: false}, nil
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
