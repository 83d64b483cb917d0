package surgery

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type mockRepo struct {
	surgeries map[uuid.UUID]*Surgery
	markers   map[uuid.UUID][]*TimeMarker
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		surgeries: make(map[uuid.UUID]*Surgery),
		markers:   make(map[uuid.UUID][]*TimeMarker),
	}
}

func (m *mockRepo) Create(_ context.Context, s *Surgery) error {
	s.ID = uuid.New()
	m.surgeries[s.ID] = s
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Surgery, error) {
	s, ok := m.surgeries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

func (m *mockRepo) Update(_ context.Context, s *Surgery) error {
	if _, ok := m.surgeries[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.surgeries[s.ID] = s
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.surgeries, id)
	return nil
}

func (m *mockRepo) ListByRange(_ context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Surgery, error) {
	var result []*Surgery
	for _, s := range m.surgeries {
		if s.HospitalID == hospitalID && !s.PlannedStart.Before(from) && !s.PlannedStart.After(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockRepo) UpsertMarker(_ context.Context, tm *TimeMarker) error {
	for i, existing := range m.markers[tm.SurgeryID] {
		if existing.Code == tm.Code {
			m.markers[tm.SurgeryID][i] = tm
			return nil
		}
	}
	tm.ID = uuid.New()
	m.markers[tm.SurgeryID] = append(m.markers[tm.SurgeryID], tm)
	return nil
}

func (m *mockRepo) ListMarkers(_ context.Context, surgeryID uuid.UUID) ([]*TimeMarker, error) {
	return m.markers[surgeryID], nil
}

func (m *mockRepo) ListMarkersByRange(_ context.Context, hospitalID uuid.UUID, from, to time.Time) (map[uuid.UUID][]*TimeMarker, error) {
	result := make(map[uuid.UUID][]*TimeMarker)
	for id, s := range m.surgeries {
		if s.HospitalID == hospitalID && !s.PlannedStart.Before(from) && !s.PlannedStart.After(to) {
			if ms := m.markers[id]; len(ms) > 0 {
				result[id] = ms
			}
		}
	}
	return result, nil
}

func mustCreate(t *testing.T, svc *Service, sg *Surgery) *Surgery {
	t.Helper()
	if sg.HospitalID == uuid.Nil {
		sg.HospitalID = uuid.New()
	}
	if sg.PatientID == uuid.Nil {
		sg.PatientID = uuid.New()
	}
	if sg.PlannedStart.IsZero() {
		sg.PlannedStart = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	}
	if err := svc.Create(context.Background(), sg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return sg
}

func TestCreateSurgery_Defaults(t *testing.T) {
	svc := NewService(newMockRepo())
	sg := mustCreate(t, svc, &Surgery{PlannedSurgery: "Appendectomy"})
	if sg.Status != StatusPlanned {
		t.Errorf("expected default status %q, got %q", StatusPlanned, sg.Status)
	}
}

func TestCreateSurgery_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Create(context.Background(), &Surgery{PatientID: uuid.New(), PlannedStart: time.Now()})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error for missing hospital, got %v", err)
	}

	start := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	err = svc.Create(context.Background(), &Surgery{
		HospitalID: uuid.New(), PatientID: uuid.New(),
		PlannedStart: start, ActualEnd: &end,
	})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error for end before start, got %v", err)
	}
}

func TestPatch_PartialUpdate(t *testing.T) {
	svc := NewService(newMockRepo())
	sg := mustCreate(t, svc, &Surgery{PlannedSurgery: "Appendectomy", Surgeon: "Dr. Meier"})

	proc := "Cholecystectomy"
	got, err := svc.Patch(context.Background(), sg.ID, &Patch{PlannedSurgery: &proc})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if got.PlannedSurgery != proc {
		t.Errorf("expected procedure %q, got %q", proc, got.PlannedSurgery)
	}
	if got.Surgeon != "Dr. Meier" {
		t.Errorf("untouched field changed: %q", got.Surgeon)
	}
}

func TestPatch_RejectsEndBeforeStart(t *testing.T) {
	svc := NewService(newMockRepo())
	sg := mustCreate(t, svc, &Surgery{})

	bad := sg.PlannedStart.Add(-30 * time.Minute)
	_, err := svc.Patch(context.Background(), sg.ID, &Patch{ActualEnd: &bad})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	// The stored record must be untouched.
	stored, err := svc.Get(context.Background(), sg.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.ActualEnd != nil {
		t.Error("rejected patch leaked into the store")
	}
}

func TestPatch_UnknownID(t *testing.T) {
	svc := NewService(newMockRepo())
	notes := "x"
	_, err := svc.Patch(context.Background(), uuid.New(), &Patch{Notes: &notes, SetNotes: true})
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestPatch_ClearRoom(t *testing.T) {
	svc := NewService(newMockRepo())
	roomID := uuid.New()
	sg := mustCreate(t, svc, &Surgery{RoomID: &roomID})

	got, err := svc.Patch(context.Background(), sg.ID, &Patch{SetRoomID: true})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if got.RoomID != nil {
		t.Error("expected room to be cleared")
	}
}

func TestArchiveUnarchive(t *testing.T) {
	svc := NewService(newMockRepo())
	sg := mustCreate(t, svc, &Surgery{})

	archived, err := svc.Archive(context.Background(), sg.ID)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if archived.Status != StatusArchived {
		t.Errorf("expected status archived, got %q", archived.Status)
	}

	restored, err := svc.Unarchive(context.Background(), sg.ID)
	if err != nil {
		t.Fatalf("Unarchive failed: %v", err)
	}
	if restored.Status != StatusPlanned {
		t.Errorf("expected status planned, got %q", restored.Status)
	}
}

func TestUnarchive_NotArchived(t *testing.T) {
	svc := NewService(newMockRepo())
	sg := mustCreate(t, svc, &Surgery{})
	if _, err := svc.Unarchive(context.Background(), sg.ID); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestListByRange_IncludesCancelledAndArchived(t *testing.T) {
	svc := NewService(newMockRepo())
	hospital := uuid.New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	mustCreate(t, svc, &Surgery{HospitalID: hospital, PlannedStart: day.Add(8 * time.Hour)})
	cancelled := mustCreate(t, svc, &Surgery{HospitalID: hospital, PlannedStart: day.Add(10 * time.Hour)})
	if _, err := svc.Patch(context.Background(), cancelled.ID, &Patch{Status: strPtr(StatusCancelled)}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	archived := mustCreate(t, svc, &Surgery{HospitalID: hospital, PlannedStart: day.Add(12 * time.Hour)})
	if _, err := svc.Archive(context.Background(), archived.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	items, err := svc.ListByRange(context.Background(), hospital, day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ListByRange failed: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected all 3 surgeries in range, got %d", len(items))
	}
}

func TestRecordMarker(t *testing.T) {
	svc := NewService(newMockRepo())
	sg := mustCreate(t, svc, &Surgery{})

	cut := sg.PlannedStart.Add(15 * time.Minute)
	m := &TimeMarker{SurgeryID: sg.ID, Code: MarkerIncision, Label: "Incision", Time: &cut, Position: 3}
	if err := svc.RecordMarker(context.Background(), m); err != nil {
		t.Fatalf("RecordMarker failed: %v", err)
	}

	markers, err := svc.Markers(context.Background(), sg.ID)
	if err != nil {
		t.Fatalf("Markers failed: %v", err)
	}
	if len(markers) != 1 || markers[0].Code != MarkerIncision {
		t.Fatalf("unexpected markers: %+v", markers)
	}

	// Recording a marker must not shift the stored planned time.
	stored, _ := svc.Get(context.Background(), sg.ID)
	if !stored.PlannedStart.Equal(sg.PlannedStart) {
		t.Error("marker write changed planned_start")
	}
}

func TestRecordMarker_UnknownSurgery(t *testing.T) {
	svc := NewService(newMockRepo())
	m := &TimeMarker{SurgeryID: uuid.New(), Code: MarkerSuture}
	if err := svc.RecordMarker(context.Background(), m); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func strPtr(s string) *string { return &s }
