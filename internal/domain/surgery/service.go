package surgery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type Service struct {
	surgeries Repository
}

func NewService(surgeries Repository) *Service {
	return &Service{surgeries: surgeries}
}

var validStatuses = map[string]bool{
	StatusPlanned: true, StatusCancelled: true,
	StatusCompleted: true, StatusArchived: true,
}

func (s *Service) Create(ctx context.Context, sg *Surgery) error {
	if sg.HospitalID == uuid.Nil {
		return apperr.Validation("hospital_id is required")
	}
	if sg.PatientID == uuid.Nil {
		return apperr.Validation("patient_id is required")
	}
	if sg.PlannedStart.IsZero() {
		return apperr.Validation("planned_start is required")
	}
	if sg.ActualEnd != nil && sg.ActualEnd.Before(sg.PlannedStart) {
		return apperr.Validation("actual_end before planned_start")
	}
	if sg.Status == "" {
		sg.Status = StatusPlanned
	}
	if !validStatuses[sg.Status] {
		return apperr.Validation("invalid status: %s", sg.Status)
	}
	return apperr.FromStore(s.surgeries.Create(ctx, sg), "", "surgery already exists")
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	sg, err := s.surgeries.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "surgery not found", "")
	}
	return sg, nil
}

// Patch applies a partial update. The stored record is loaded first so
// that untouched fields keep their values and cross-field checks see the
// final state.
func (s *Service) Patch(ctx context.Context, id uuid.UUID, p *Patch) (*Surgery, error) {
	sg, err := s.surgeries.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "surgery not found", "")
	}
	if p.Status != nil && !validStatuses[*p.Status] {
		return nil, apperr.Validation("invalid status: %s", *p.Status)
	}
	p.Apply(sg)
	if sg.ActualEnd != nil && sg.ActualEnd.Before(sg.PlannedStart) {
		return nil, apperr.Validation("actual_end before planned_start")
	}
	if err := s.surgeries.Update(ctx, sg); err != nil {
		return nil, apperr.FromStore(err, "surgery not found", "")
	}
	return sg, nil
}

// Archive moves a surgery out of the working set without deleting it.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	status := StatusArchived
	return s.Patch(ctx, id, &Patch{Status: &status})
}

// Unarchive restores an archived surgery to planned.
func (s *Service) Unarchive(ctx context.Context, id uuid.UUID) (*Surgery, error) {
	sg, err := s.surgeries.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "surgery not found", "")
	}
	if sg.Status != StatusArchived {
		return nil, apperr.Validation("surgery is not archived")
	}
	status := StatusPlanned
	return s.Patch(ctx, id, &Patch{Status: &status})
}

func (s *Service) ListByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Surgery, error) {
	if to.Before(from) {
		return nil, apperr.Validation("range end before range start")
	}
	return s.surgeries.ListByRange(ctx, hospitalID, from, to)
}

// RecordMarker upserts one documented time marker. Markers never touch
// the stored planned times; projection folds them in at read time.
func (s *Service) RecordMarker(ctx context.Context, m *TimeMarker) error {
	if m.SurgeryID == uuid.Nil {
		return apperr.Validation("surgery_id is required")
	}
	if m.Code == "" {
		return apperr.Validation("code is required")
	}
	if _, err := s.surgeries.GetByID(ctx, m.SurgeryID); err != nil {
		return apperr.FromStore(err, "surgery not found", "")
	}
	return apperr.FromStore(s.surgeries.UpsertMarker(ctx, m), "", "marker already recorded")
}

func (s *Service) Markers(ctx context.Context, surgeryID uuid.UUID) ([]*TimeMarker, error) {
	return s.surgeries.ListMarkers(ctx, surgeryID)
}

func (s *Service) MarkersByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) (map[uuid.UUID][]*TimeMarker, error) {
	return s.surgeries.ListMarkersByRange(ctx, hospitalID, from, to)
}
