package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type mockRoomRepo struct {
	assignments map[uuid.UUID]*RoomStaffAssignment
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{assignments: make(map[uuid.UUID]*RoomStaffAssignment)}
}

func (m *mockRoomRepo) Create(_ context.Context, a *RoomStaffAssignment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.assignments[a.ID] = a
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockRoomRepo) Exists(_ context.Context, roomID, poolID uuid.UUID) (bool, error) {
	for _, a := range m.assignments {
		if a.RoomID == roomID && a.PoolID == poolID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRoomRepo) ListByRoom(_ context.Context, roomID uuid.UUID, date time.Time) ([]*RoomStaffAssignment, error) {
	var result []*RoomStaffAssignment
	for _, a := range m.assignments {
		if a.RoomID == roomID && a.Date.Equal(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockRoomRepo) ListByDate(_ context.Context, date time.Time) ([]*RoomStaffAssignment, error) {
	var result []*RoomStaffAssignment
	for _, a := range m.assignments {
		if a.Date.Equal(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

type mockSurgeryRepo struct {
	assignments map[uuid.UUID]*PlannedStaffAssignment
}

func newMockSurgeryRepo() *mockSurgeryRepo {
	return &mockSurgeryRepo{assignments: make(map[uuid.UUID]*PlannedStaffAssignment)}
}

func (m *mockSurgeryRepo) Create(_ context.Context, a *PlannedStaffAssignment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.assignments[a.ID] = a
	return nil
}

func (m *mockSurgeryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockSurgeryRepo) Exists(_ context.Context, surgeryID, poolID uuid.UUID) (bool, error) {
	for _, a := range m.assignments {
		if a.SurgeryID == surgeryID && a.PoolID == poolID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSurgeryRepo) ListBySurgery(_ context.Context, surgeryID uuid.UUID) ([]*PlannedStaffAssignment, error) {
	var result []*PlannedStaffAssignment
	for _, a := range m.assignments {
		if a.SurgeryID == surgeryID {
			result = append(result, a)
		}
	}
	return result, nil
}

func newTestService() *Service {
	return NewService(newMockRoomRepo(), newMockSurgeryRepo())
}

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestAssignToRoom_DuplicateConflicts(t *testing.T) {
	svc := newTestService()
	roomID, poolID := uuid.New(), uuid.New()

	first, err := svc.AssignToRoom(context.Background(), roomID, poolID, testDay)
	if err != nil {
		t.Fatalf("first AssignToRoom failed: %v", err)
	}

	_, err = svc.AssignToRoom(context.Background(), roomID, poolID, testDay)
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Unassign then re-assign succeeds.
	if err := svc.UnassignRoom(context.Background(), first.ID); err != nil {
		t.Fatalf("UnassignRoom failed: %v", err)
	}
	if _, err := svc.AssignToRoom(context.Background(), roomID, poolID, testDay); err != nil {
		t.Errorf("re-assign after unassign failed: %v", err)
	}
}

func TestAssignToRoom_SamePoolDifferentRooms(t *testing.T) {
	svc := newTestService()
	poolID := uuid.New()

	if _, err := svc.AssignToRoom(context.Background(), uuid.New(), poolID, testDay); err != nil {
		t.Fatalf("first room failed: %v", err)
	}
	if _, err := svc.AssignToRoom(context.Background(), uuid.New(), poolID, testDay); err != nil {
		t.Errorf("second room failed: %v", err)
	}
}

func TestAssignToSurgery_DuplicateConflicts(t *testing.T) {
	svc := newTestService()
	surgeryID, poolID := uuid.New(), uuid.New()

	if _, err := svc.AssignToSurgery(context.Background(), surgeryID, poolID); err != nil {
		t.Fatalf("first AssignToSurgery failed: %v", err)
	}
	_, err := svc.AssignToSurgery(context.Background(), surgeryID, poolID)
	if !apperr.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
	if err != nil && err.Error() != "already assigned" {
		t.Errorf("expected %q message, got %q", "already assigned", err.Error())
	}
}

func TestRoomAndSurgeryAssignmentsCoexist(t *testing.T) {
	svc := newTestService()
	poolID := uuid.New()

	if _, err := svc.AssignToRoom(context.Background(), uuid.New(), poolID, testDay); err != nil {
		t.Fatalf("room assignment failed: %v", err)
	}
	if _, err := svc.AssignToSurgery(context.Background(), uuid.New(), poolID); err != nil {
		t.Errorf("surgery assignment alongside room assignment failed: %v", err)
	}
}

func TestUnassign_Idempotent(t *testing.T) {
	svc := newTestService()
	if err := svc.UnassignRoom(context.Background(), uuid.New()); err != nil {
		t.Errorf("unassigning a missing room binding must succeed, got %v", err)
	}
	if err := svc.UnassignSurgery(context.Background(), uuid.New()); err != nil {
		t.Errorf("unassigning a missing surgery binding must succeed, got %v", err)
	}
}

func TestDrop_Dispatch(t *testing.T) {
	svc := newTestService()
	drag := StaffDrag{PoolID: uuid.New()}

	roomOutcome, err := svc.Drop(context.Background(), drag, DropTarget{
		Room: &RoomTarget{RoomID: uuid.New(), Date: testDay},
	})
	if err != nil {
		t.Fatalf("room drop failed: %v", err)
	}
	if !roomOutcome.Assigned || roomOutcome.RoomID == nil {
		t.Errorf("unexpected room outcome: %+v", roomOutcome)
	}

	surgeryOutcome, err := svc.Drop(context.Background(), drag, DropTarget{
		Surgery: &SurgeryTarget{SurgeryID: uuid.New()},
	})
	if err != nil {
		t.Fatalf("surgery drop failed: %v", err)
	}
	if !surgeryOutcome.Assigned || surgeryOutcome.Surgery == nil {
		t.Errorf("unexpected surgery outcome: %+v", surgeryOutcome)
	}
}

func TestDrop_UnrecognizedTargetIsNoOp(t *testing.T) {
	svc := newTestService()
	outcome, err := svc.Drop(context.Background(), StaffDrag{PoolID: uuid.New()}, DropTarget{})
	if err != nil {
		t.Fatalf("empty-target drop errored: %v", err)
	}
	if outcome.Assigned {
		t.Error("empty target must not assign anything")
	}
}
