package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for patients.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	// FindByNameAndBirthDate matches last name, first name and birth date
	// within one hospital, names compared case-insensitively. Returns
	// pgx.ErrNoRows when absent.
	FindByNameAndBirthDate(ctx context.Context, hospitalID uuid.UUID, lastName, firstName string, birthDate time.Time) (*Patient, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
