package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/surgery"
)

const defDur = 3 * time.Hour

func baseSurgery() *surgery.Surgery {
	return &surgery.Surgery{
		ID:             uuid.New(),
		HospitalID:     uuid.New(),
		PatientID:      uuid.New(),
		PlannedStart:   time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		PlannedSurgery: "Appendectomy",
		Status:         surgery.StatusPlanned,
	}
}

func marker(code string, at *time.Time) *surgery.TimeMarker {
	return &surgery.TimeMarker{ID: uuid.New(), Code: code, Time: at}
}

func TestProjectEvent_DefaultDuration(t *testing.T) {
	s := baseSurgery()
	ev := ProjectEvent(s, nil, defDur)
	if !ev.DisplayStart.Equal(s.PlannedStart) {
		t.Errorf("display start: got %v", ev.DisplayStart)
	}
	if !ev.DisplayEnd.Equal(s.PlannedStart.Add(defDur)) {
		t.Errorf("display end: got %v", ev.DisplayEnd)
	}
	if ev.State != StateScheduled {
		t.Errorf("state: got %s", ev.State)
	}
}

func TestProjectEvent_ActualEndWins(t *testing.T) {
	s := baseSurgery()
	end := s.PlannedStart.Add(2 * time.Hour)
	s.ActualEnd = &end
	ev := ProjectEvent(s, nil, defDur)
	if !ev.DisplayEnd.Equal(end) {
		t.Errorf("display end: got %v, want %v", ev.DisplayEnd, end)
	}
}

func TestProjectEvent_IncisionAndSuture(t *testing.T) {
	s := baseSurgery()
	cut := s.PlannedStart.Add(10 * time.Minute)
	sew := cut.Add(90 * time.Minute)
	markers := []*surgery.TimeMarker{
		marker(surgery.MarkerIncision, &cut),
		marker(surgery.MarkerSuture, &sew),
	}
	ev := ProjectEvent(s, markers, defDur)
	if !ev.DisplayStart.Equal(cut) {
		t.Errorf("display start: got %v, want %v", ev.DisplayStart, cut)
	}
	if !ev.DisplayEnd.Equal(sew) {
		t.Errorf("display end: got %v, want %v", ev.DisplayEnd, sew)
	}
	if ev.State != StateClosing {
		t.Errorf("state: got %s, want %s", ev.State, StateClosing)
	}
}

func TestProjectEvent_IncisionOnly(t *testing.T) {
	s := baseSurgery()
	cut := s.PlannedStart.Add(20 * time.Minute)
	markers := []*surgery.TimeMarker{marker(surgery.MarkerIncision, &cut)}
	ev := ProjectEvent(s, markers, defDur)
	if !ev.DisplayStart.Equal(cut) {
		t.Errorf("display start: got %v", ev.DisplayStart)
	}
	// Expected end shifts with the actual start.
	if !ev.DisplayEnd.Equal(cut.Add(defDur)) {
		t.Errorf("display end: got %v, want %v", ev.DisplayEnd, cut.Add(defDur))
	}
	if ev.State != StateInProgress {
		t.Errorf("state: got %s", ev.State)
	}
}

func TestProjectEvent_AnesthesiaEndCompletes(t *testing.T) {
	s := baseSurgery()
	cut := s.PlannedStart
	sew := cut.Add(90 * time.Minute)
	out := sew.Add(15 * time.Minute)
	for _, code := range []string{surgery.MarkerAnesthesiaEnd, surgery.MarkerAnesthesiaOut} {
		markers := []*surgery.TimeMarker{
			marker(surgery.MarkerIncision, &cut),
			marker(surgery.MarkerSuture, &sew),
			marker(code, &out),
		}
		ev := ProjectEvent(s, markers, defDur)
		if ev.State != StateCompleted {
			t.Errorf("marker %s: state %s, want %s", code, ev.State, StateCompleted)
		}
		if ev.State == StateScheduled {
			t.Error("documented markers must never project as scheduled")
		}
	}
}

func TestProjectEvent_NilMarkerTimeIsAbsent(t *testing.T) {
	s := baseSurgery()
	markers := []*surgery.TimeMarker{
		marker(surgery.MarkerIncision, nil),
		marker(surgery.MarkerSuture, nil),
	}
	ev := ProjectEvent(s, markers, defDur)
	if ev.State != StateScheduled {
		t.Errorf("state: got %s, want %s", ev.State, StateScheduled)
	}
	if !ev.DisplayStart.Equal(s.PlannedStart) {
		t.Errorf("nil marker moved display start to %v", ev.DisplayStart)
	}
}

func TestProjectEvent_CancelledAbsorbs(t *testing.T) {
	s := baseSurgery()
	s.Status = surgery.StatusCancelled
	cut := s.PlannedStart
	markers := []*surgery.TimeMarker{marker(surgery.MarkerIncision, &cut)}
	ev := ProjectEvent(s, markers, defDur)
	if ev.State != StateCancelled {
		t.Errorf("state: got %s, want %s", ev.State, StateCancelled)
	}
	if !ev.IsCancelled {
		t.Error("expected IsCancelled")
	}
}

func TestProjectEvent_Deterministic(t *testing.T) {
	s := baseSurgery()
	cut := s.PlannedStart.Add(5 * time.Minute)
	markers := []*surgery.TimeMarker{marker(surgery.MarkerIncision, &cut)}
	first := ProjectEvent(s, markers, defDur)
	second := ProjectEvent(s, markers, defDur)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("projection not deterministic: %+v vs %+v", first, second)
	}
	// Projection must not mutate the record.
	if s.ActualEnd != nil || !s.PlannedStart.Equal(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)) {
		t.Error("projection mutated the surgery")
	}
}

func TestDeriveState_Priority(t *testing.T) {
	now := time.Now()
	all := []*surgery.TimeMarker{
		marker(surgery.MarkerIncision, &now),
		marker(surgery.MarkerSuture, &now),
		marker(surgery.MarkerAnesthesiaEnd, &now),
	}
	if got := deriveState(true, all); got != StateCancelled {
		t.Errorf("cancelled must win, got %s", got)
	}
	if got := deriveState(false, all); got != StateCompleted {
		t.Errorf("anesthesia end must win over suture, got %s", got)
	}
}
