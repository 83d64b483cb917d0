package bulkimport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orplan/orplan/internal/domain/staffpool"
	"github.com/orplan/orplan/internal/domain/surgery"
)

// SurgeryStore is the slice of surgery.Service the import needs.
type SurgeryStore interface {
	Create(ctx context.Context, sg *surgery.Surgery) error
}

// StaffSource lists directory users for surgeon matching. Satisfied by
// staffpool.Service.
type StaffSource interface {
	ListStaffOptions(ctx context.Context, hospitalID uuid.UUID) ([]*staffpool.StaffUser, error)
}

// PreviewRow is a parsed row plus its match annotations, returned to the
// caller for review before commit.
type PreviewRow struct {
	*ParsedRow
	Match RowMatch `json:"match"`
}

// RowError reports one failed row in a commit.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report aggregates a commit run. A partial failure is a normal
// outcome, not an error.
type Report struct {
	Created int        `json:"created"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
}

type Service struct {
	patients   PatientSource
	surgeries  SurgeryStore
	staff      StaffSource
	defaultMin int
	log        zerolog.Logger
}

// NewService wires the import against its patient, surgery and staff
// sources. defaultDuration is assumed for rows without a usable
// duration column; zero falls back to DefaultDurationMinutes.
func NewService(patients PatientSource, surgeries SurgeryStore, staff StaffSource, defaultDuration time.Duration, log zerolog.Logger) *Service {
	min := int(defaultDuration / time.Minute)
	if min <= 0 {
		min = DefaultDurationMinutes
	}
	return &Service{patients: patients, surgeries: surgeries, staff: staff, defaultMin: min, log: log}
}

// Preview parses pasted text and annotates each valid row with patient
// and surgeon matches. Match failures never invalidate a row; they just
// leave the reference nil so commit creates or falls back to free text.
func (s *Service) Preview(ctx context.Context, hospitalID uuid.UUID, text string) ([]*PreviewRow, error) {
	rows := ParseRows(text, s.defaultMin)

	options, err := s.staff.ListStaffOptions(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	out := make([]*PreviewRow, 0, len(rows))
	for _, row := range rows {
		pr := &PreviewRow{ParsedRow: row}
		if row.Valid {
			p, err := s.patients.Find(ctx, hospitalID, row.LastName, row.FirstName, *row.BirthDate)
			if err != nil {
				return nil, err
			}
			if p != nil {
				pr.Match.PatientID = &p.ID
			}
			if u := MatchSurgeon(row.Surgeon, options); u != nil {
				pr.Match.SurgeonID = &u.ID
			}
		}
		out = append(out, pr)
	}
	return out, nil
}

// CommitRow is one row the caller chose to import.
type CommitRow struct {
	Row       *ParsedRow
	SurgeonID *uuid.UUID
}

// commitReady re-checks the required fields. Rows arrive from the
// client, so the Valid flag alone is never trusted: a row claiming
// validity while missing its dates must fail like any other bad row,
// not take the batch down.
func commitReady(r *ParsedRow) bool {
	return r != nil && r.Valid &&
		r.BirthDate != nil && r.SurgeryDate != nil &&
		r.LastName != "" && r.FirstName != "" &&
		r.StartTime != "" && r.Procedure != ""
}

// Commit imports rows one at a time. Sequential on purpose: creating
// the patient before the surgery must not race a duplicate create for
// the same person on a later row. A failing row is counted and skipped,
// never aborts the batch.
func (s *Service) Commit(ctx context.Context, hospitalID uuid.UUID, rows []CommitRow) *Report {
	report := &Report{}
	for _, cr := range rows {
		row := cr.Row
		if !commitReady(row) {
			report.Failed++
			line := 0
			if row != nil {
				line = row.Line
			}
			report.Errors = append(report.Errors, RowError{Line: line, Message: "row is not valid"})
			continue
		}
		if err := s.commitRow(ctx, hospitalID, row, cr.SurgeonID); err != nil {
			s.log.Warn().Err(err).Int("line", row.Line).Msg("import row failed")
			report.Failed++
			report.Errors = append(report.Errors, RowError{Line: row.Line, Message: err.Error()})
			continue
		}
		report.Created++
	}
	return report
}

func (s *Service) commitRow(ctx context.Context, hospitalID uuid.UUID, row *ParsedRow, surgeonID *uuid.UUID) error {
	p, _, err := s.patients.LookupOrCreate(ctx, hospitalID, row.LastName, row.FirstName, *row.BirthDate)
	if err != nil {
		return err
	}
	end := row.End()
	sg := &surgery.Surgery{
		HospitalID:     hospitalID,
		PatientID:      p.ID,
		PlannedStart:   row.Start(),
		ActualEnd:      &end,
		PlannedSurgery: row.Procedure,
		Surgeon:        row.Surgeon,
		SurgeonID:      surgeonID,
		Status:         surgery.StatusPlanned,
	}
	if row.Notes != "" {
		notes := row.Notes
		sg.Notes = &notes
	}
	return s.surgeries.Create(ctx, sg)
}
