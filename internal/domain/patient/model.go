package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. BirthDate carries date precision
// only; the time component is always midnight UTC.
type Patient struct {
	ID         uuid.UUID `db:"id" json:"id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	LastName   string    `db:"last_name" json:"last_name"`
	FirstName  string    `db:"first_name" json:"first_name"`
	BirthDate  time.Time `db:"birth_date" json:"birth_date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FullName renders "Last, First" for plan rows and day sheets.
func (p *Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.LastName + ", " + p.FirstName
}
