package bulkimport

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/patient"
	"github.com/orplan/orplan/internal/domain/staffpool"
)

// PatientSource resolves pasted names against existing patient records.
// Satisfied by patient.Service.
type PatientSource interface {
	Find(ctx context.Context, hospitalID uuid.UUID, lastName, firstName string, birthDate time.Time) (*patient.Patient, error)
	LookupOrCreate(ctx context.Context, hospitalID uuid.UUID, lastName, firstName string, birthDate time.Time) (*patient.Patient, bool, error)
}

// RowMatch annotates a parsed row with resolved references. A nil
// PatientID means commit will create the patient; a nil SurgeonID means
// the surgeon stays free text on the surgery.
type RowMatch struct {
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
	SurgeonID *uuid.UUID `json:"surgeon_id,omitempty"`
}

// MatchSurgeon resolves a free-text surgeon cell against the staff
// directory. Tries, in order: case-insensitive exact name, exact last
// name, exact first name, then substring containment either way.
func MatchSurgeon(text string, options []*staffpool.StaffUser) *staffpool.StaffUser {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	for _, u := range options {
		if strings.ToLower(u.Name) == text {
			return u
		}
	}
	for _, u := range options {
		parts := strings.Fields(strings.ToLower(u.Name))
		if len(parts) > 0 && parts[len(parts)-1] == text {
			return u
		}
	}
	for _, u := range options {
		parts := strings.Fields(strings.ToLower(u.Name))
		if len(parts) > 0 && parts[0] == text {
			return u
		}
	}
	for _, u := range options {
		name := strings.ToLower(u.Name)
		if strings.Contains(name, text) || strings.Contains(text, name) {
			return u
		}
	}
	return nil
}
