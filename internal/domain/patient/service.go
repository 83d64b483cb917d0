package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.LastName == "" {
		return apperr.Validation("last_name is required")
	}
	if p.BirthDate.IsZero() {
		return apperr.Validation("birth_date is required")
	}
	p.BirthDate = truncateToDate(p.BirthDate)
	return apperr.FromStore(s.patients.Create(ctx, p), "", "patient already exists")
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "patient not found", "")
	}
	return p, nil
}

// LookupOrCreate finds the patient by exact name and birth date and
// creates one when no match exists. Matching is case-insensitive on
// names; a near-miss on the birth date is a different patient.
func (s *Service) LookupOrCreate(ctx context.Context, hospitalID uuid.UUID, lastName, firstName string, birthDate time.Time) (*Patient, bool, error) {
	if lastName == "" {
		return nil, false, apperr.Validation("last_name is required")
	}
	birthDate = truncateToDate(birthDate)
	existing, err := s.patients.FindByNameAndBirthDate(ctx, hospitalID, lastName, firstName, birthDate)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperr.Transport("patient lookup failed", err)
	}
	p := &Patient{HospitalID: hospitalID, LastName: lastName, FirstName: firstName, BirthDate: birthDate}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, false, apperr.FromStore(err, "", "patient already exists")
	}
	return p, true, nil
}

// Find returns the case-insensitive exact match on name and birth date,
// or nil when no such patient exists.
func (s *Service) Find(ctx context.Context, hospitalID uuid.UUID, lastName, firstName string, birthDate time.Time) (*Patient, error) {
	p, err := s.patients.FindByNameAndBirthDate(ctx, hospitalID, lastName, firstName, truncateToDate(birthDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Transport("patient lookup failed", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error) {
	return s.patients.ListByIDs(ctx, ids)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
