package room

import (
	"context"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type Service struct {
	rooms Repository
}

func NewService(rooms Repository) *Service {
	return &Service{rooms: rooms}
}

var validRoomTypes = map[string]bool{
	TypeOP:   true,
	TypePACU: true,
}

func (s *Service) Create(ctx context.Context, r *SurgeryRoom) error {
	if r.Name == "" {
		return apperr.Validation("name is required")
	}
	if r.HospitalID == uuid.Nil {
		return apperr.Validation("hospital_id is required")
	}
	if r.RoomType == "" {
		r.RoomType = TypeOP
	}
	if !validRoomTypes[r.RoomType] {
		return apperr.Validation("invalid room_type: " + r.RoomType)
	}
	r.IsActive = true
	return apperr.FromStore(s.rooms.Create(ctx, r), "room not found", "room name already in use")
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SurgeryRoom, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "room not found", "")
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, r *SurgeryRoom) error {
	if r.RoomType != "" && !validRoomTypes[r.RoomType] {
		return apperr.Validation("invalid room_type: " + r.RoomType)
	}
	return apperr.FromStore(s.rooms.Update(ctx, r), "room not found", "room name already in use")
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rooms.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*SurgeryRoom, int, error) {
	return s.rooms.List(ctx, hospitalID, limit, offset)
}

// OperatingRooms returns the active OP rooms for a hospital. PACU bays
// never show up on the operating plan.
func (s *Service) OperatingRooms(ctx context.Context, hospitalID uuid.UUID) ([]*SurgeryRoom, error) {
	return s.rooms.ListByType(ctx, hospitalID, TypeOP)
}
