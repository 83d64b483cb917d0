package daysheet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/assignment"
	"github.com/orplan/orplan/internal/domain/patient"
	"github.com/orplan/orplan/internal/domain/room"
	"github.com/orplan/orplan/internal/domain/staffpool"
	"github.com/orplan/orplan/internal/domain/surgery"
)

type SurgerySource interface {
	ListByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*surgery.Surgery, error)
	MarkersByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) (map[uuid.UUID][]*surgery.TimeMarker, error)
}

type RoomSource interface {
	OperatingRooms(ctx context.Context, hospitalID uuid.UUID) ([]*room.SurgeryRoom, error)
}

type PatientSource interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*patient.Patient, error)
}

type AssignmentSource interface {
	ListRoomAssignmentsByDate(ctx context.Context, date time.Time) ([]*assignment.RoomStaffAssignment, error)
}

type PoolSource interface {
	ListPool(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*staffpool.PoolEntry, error)
}

// Service joins surgeries, patients, rooms and room staff into the
// printable day sheet.
type Service struct {
	surgeries   SurgerySource
	rooms       RoomSource
	patients    PatientSource
	assignments AssignmentSource
	pool        PoolSource
	renderer    Renderer
	rowsPerPage int
}

func NewService(surgeries SurgerySource, rooms RoomSource, patients PatientSource,
	assignments AssignmentSource, pool PoolSource, renderer Renderer, rowsPerPage int) *Service {
	return &Service{
		surgeries:   surgeries,
		rooms:       rooms,
		patients:    patients,
		assignments: assignments,
		pool:        pool,
		renderer:    renderer,
		rowsPerPage: rowsPerPage,
	}
}

// Build gathers the day's data and assembles the sheet. ok is false for
// an empty day.
func (s *Service) Build(ctx context.Context, hospitalID uuid.UUID, date time.Time) (*DaySheet, bool, error) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	to := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), date.Location())

	surgeries, err := s.surgeries.ListByRange(ctx, hospitalID, from, to)
	if err != nil {
		return nil, false, err
	}
	if len(surgeries) == 0 {
		return nil, false, nil
	}
	markers, err := s.surgeries.MarkersByRange(ctx, hospitalID, from, to)
	if err != nil {
		return nil, false, err
	}
	rooms, err := s.rooms.OperatingRooms(ctx, hospitalID)
	if err != nil {
		return nil, false, err
	}

	patientIDs := make([]uuid.UUID, 0, len(surgeries))
	seen := make(map[uuid.UUID]bool)
	for _, sg := range surgeries {
		if !seen[sg.PatientID] {
			seen[sg.PatientID] = true
			patientIDs = append(patientIDs, sg.PatientID)
		}
	}
	patients, err := s.patients.ListByIDs(ctx, patientIDs)
	if err != nil {
		return nil, false, err
	}
	patientByID := make(map[uuid.UUID]*patient.Patient, len(patients))
	for _, p := range patients {
		patientByID[p.ID] = p
	}

	roomStaff, err := s.roomStaffNames(ctx, hospitalID, from)
	if err != nil {
		return nil, false, err
	}

	sheet, ok := BuildDaySheet(Input{
		Date:      from,
		Surgeries: surgeries,
		Markers:   markers,
		Rooms:     rooms,
		Patients:  patientByID,
		RoomStaff: roomStaff,
	}, s.rowsPerPage)
	return sheet, ok, nil
}

// Render builds and renders the sheet in one step.
func (s *Service) Render(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]byte, string, bool, error) {
	sheet, ok, err := s.Build(ctx, hospitalID, date)
	if err != nil || !ok {
		return nil, "", false, err
	}
	doc, contentType, err := s.renderer.Render(ctx, sheet)
	if err != nil {
		return nil, "", false, err
	}
	return doc, contentType, true, nil
}

// roomStaffNames resolves the day's room assignments to display names
// via the staff pool.
func (s *Service) roomStaffNames(ctx context.Context, hospitalID uuid.UUID, date time.Time) (map[uuid.UUID][]string, error) {
	assignments, err := s.assignments.ListRoomAssignmentsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}
	entries, err := s.pool.ListPool(ctx, hospitalID, date)
	if err != nil {
		return nil, err
	}
	nameByPool := make(map[uuid.UUID]string, len(entries))
	for _, e := range entries {
		nameByPool[e.ID] = e.Name
	}
	result := make(map[uuid.UUID][]string)
	for _, a := range assignments {
		if name, ok := nameByPool[a.PoolID]; ok {
			result[a.RoomID] = append(result[a.RoomID], name)
		}
	}
	return result, nil
}
