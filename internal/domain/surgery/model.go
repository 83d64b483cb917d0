package surgery

import (
	"time"

	"github.com/google/uuid"
)

// Surgery statuses.
const (
	StatusPlanned   = "planned"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Well-known time marker codes. O1 is incision, O2 is suture, A2 and X2
// both record the end of anesthesia care depending on the documentation
// template in use.
const (
	MarkerIncision      = "O1"
	MarkerSuture        = "O2"
	MarkerAnesthesiaEnd = "A2"
	MarkerAnesthesiaOut = "X2"
)

// Surgery maps to the surgery table.
type Surgery struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	HospitalID     uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	RoomID         *uuid.UUID `db:"room_id" json:"room_id,omitempty"`
	PlannedStart   time.Time  `db:"planned_start" json:"planned_start"`
	ActualEnd      *time.Time `db:"actual_end" json:"actual_end,omitempty"`
	PlannedSurgery string     `db:"planned_surgery" json:"planned_surgery"`
	Surgeon        string     `db:"surgeon" json:"surgeon"`
	SurgeonID      *uuid.UUID `db:"surgeon_id" json:"surgeon_id,omitempty"`
	Status         string     `db:"status" json:"status"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// TimeMarker maps to the time_marker table. A marker with a nil Time has
// not been documented yet.
type TimeMarker struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	SurgeryID uuid.UUID  `db:"surgery_id" json:"surgery_id"`
	Code      string     `db:"code" json:"code"`
	Label     string     `db:"label" json:"label"`
	Time      *time.Time `db:"time" json:"time,omitempty"`
	Position  int        `db:"position" json:"position"`
}

// Patch carries a partial update. Nil fields are left unchanged; the
// Set* flags distinguish assigning NULL from leaving a nullable column
// alone.
type Patch struct {
	PlannedStart   *time.Time `json:"planned_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
	SetActualEnd   bool       `json:"set_actual_end,omitempty"`
	RoomID         *uuid.UUID `json:"room_id,omitempty"`
	SetRoomID      bool       `json:"set_room_id,omitempty"`
	PlannedSurgery *string    `json:"planned_surgery,omitempty"`
	Surgeon        *string    `json:"surgeon,omitempty"`
	SurgeonID      *uuid.UUID `json:"surgeon_id,omitempty"`
	SetSurgeonID   bool       `json:"set_surgeon_id,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	SetNotes       bool       `json:"set_notes,omitempty"`
	Status         *string    `json:"status,omitempty"`
}

// Apply folds the patch into s.
func (p *Patch) Apply(s *Surgery) {
	if p.PlannedStart != nil {
		s.PlannedStart = *p.PlannedStart
	}
	if p.SetActualEnd || p.ActualEnd != nil {
		s.ActualEnd = p.ActualEnd
	}
	if p.SetRoomID || p.RoomID != nil {
		s.RoomID = p.RoomID
	}
	if p.PlannedSurgery != nil {
		s.PlannedSurgery = *p.PlannedSurgery
	}
	if p.Surgeon != nil {
		s.Surgeon = *p.Surgeon
	}
	if p.SetSurgeonID || p.SurgeonID != nil {
		s.SurgeonID = p.SurgeonID
	}
	if p.SetNotes || p.Notes != nil {
		s.Notes = p.Notes
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}
