package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/assignment"
	"github.com/orplan/orplan/internal/domain/staffpool"
	"github.com/orplan/orplan/internal/domain/surgery"
	"github.com/orplan/orplan/internal/platform/apperr"
)

func TestSurgeryLifecycle(t *testing.T) {
	ctx := context.Background()
	hospitalID := uuid.New()
	r := createTestRoom(t, ctx, hospitalID, "OR 1")
	p := createTestPatient(t, ctx, hospitalID, "Doe", "Jane")

	repo := surgery.NewRepoPG(globalDB.Pool)
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	sg := &surgery.Surgery{
		HospitalID:     hospitalID,
		PatientID:      p.ID,
		RoomID:         &r.ID,
		PlannedStart:   start,
		PlannedSurgery: "Appendectomy",
		Status:         surgery.StatusPlanned,
	}
	if err := repo.Create(ctx, sg); err != nil {
		t.Fatalf("create surgery: %v", err)
	}

	got, err := repo.GetByID(ctx, sg.ID)
	if err != nil {
		t.Fatalf("get surgery: %v", err)
	}
	if !got.PlannedStart.Equal(start) || got.RoomID == nil || *got.RoomID != r.ID {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// Windowed listing covers the whole day and is hospital-scoped.
	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Millisecond)
	list, err := repo.ListByRange(ctx, hospitalID, from, to)
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list by range: got %d surgeries", len(list))
	}
	other, err := repo.ListByRange(ctx, uuid.New(), from, to)
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("foreign hospital must see nothing, got %d", len(other))
	}

	// Upserting the same marker code twice keeps one row.
	cut := start.Add(20 * time.Minute)
	for i := 0; i < 2; i++ {
		m := &surgery.TimeMarker{SurgeryID: sg.ID, Code: surgery.MarkerIncision, Label: "Incision", Time: &cut}
		if err := repo.UpsertMarker(ctx, m); err != nil {
			t.Fatalf("upsert marker: %v", err)
		}
	}
	markers, err := repo.ListMarkers(ctx, sg.ID)
	if err != nil {
		t.Fatalf("list markers: %v", err)
	}
	if len(markers) != 1 {
		t.Errorf("markers: got %d, want 1", len(markers))
	}
}

func TestPoolEntryUniquePerUserAndDate(t *testing.T) {
	ctx := context.Background()
	hospitalID := uuid.New()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	users := staffpool.NewUserRepoPG(globalDB.Pool)
	pool := staffpool.NewPoolRepoPG(globalDB.Pool)
	svc := staffpool.NewService(users, pool)

	u := &staffpool.StaffUser{HospitalID: hospitalID, Name: "Anna Miller", Role: staffpool.RoleSurgeon}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := svc.AddToPool(ctx, hospitalID, date, u.Name, staffpool.RoleSurgeon, &u.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.AddToPool(ctx, hospitalID, date, u.Name, staffpool.RoleSurgeon, &u.ID)
	if !apperr.IsConflict(err) {
		t.Errorf("second add: got %v, want conflict", err)
	}

	// A different date is fine.
	if _, err := svc.AddToPool(ctx, hospitalID, date.AddDate(0, 0, 1), u.Name, staffpool.RoleSurgeon, &u.ID); err != nil {
		t.Errorf("next day add: %v", err)
	}
}

func TestRoomAssignmentConflict(t *testing.T) {
	ctx := context.Background()
	hospitalID := uuid.New()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	r := createTestRoom(t, ctx, hospitalID, "OR 2")

	pool := staffpool.NewPoolRepoPG(globalDB.Pool)
	entry := &staffpool.PoolEntry{HospitalID: hospitalID, Date: date, Name: "Ad Hoc Nurse", Role: staffpool.RoleInstrumentNurse}
	if err := pool.Create(ctx, entry); err != nil {
		t.Fatalf("create pool entry: %v", err)
	}

	svc := assignment.NewService(assignment.NewRoomRepoPG(globalDB.Pool), assignment.NewSurgeryRepoPG(globalDB.Pool))

	a, err := svc.AssignToRoom(ctx, r.ID, entry.ID, date)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.AssignToRoom(ctx, r.ID, entry.ID, date); !apperr.IsConflict(err) {
		t.Errorf("duplicate assign: got %v, want conflict", err)
	}

	// Unassign then re-assign succeeds; unassign is idempotent.
	if err := svc.UnassignRoom(ctx, a.ID); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if err := svc.UnassignRoom(ctx, a.ID); err != nil {
		t.Errorf("repeat unassign: %v", err)
	}
	if _, err := svc.AssignToRoom(ctx, r.ID, entry.ID, date); err != nil {
		t.Errorf("re-assign: %v", err)
	}
}
