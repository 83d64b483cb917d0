package staffpool

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles available for daily planning.
const (
	RoleSurgeon           = "surgeon"
	RoleSurgicalAssistant = "surgicalAssistant"
	RoleInstrumentNurse   = "instrumentNurse"
	RoleCirculatingNurse  = "circulatingNurse"
	RoleAnesthesiologist  = "anesthesiologist"
	RoleAnesthesiaNurse   = "anesthesiaNurse"
	RolePACUNurse         = "pacuNurse"
)

// ValidRoles is the closed set of plannable roles.
var ValidRoles = map[string]bool{
	RoleSurgeon: true, RoleSurgicalAssistant: true,
	RoleInstrumentNurse: true, RoleCirculatingNurse: true,
	RoleAnesthesiologist: true, RoleAnesthesiaNurse: true,
	RolePACUNurse: true,
}

// StaffUser is a permanent staff-directory record.
type StaffUser struct {
	ID         uuid.UUID `db:"id" json:"id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	Name       string    `db:"name" json:"name"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Role       string    `db:"role" json:"role"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// PoolEntry is one staff member planned for a hospital on a single date.
// Entries are per-date; the same person needs a fresh entry each day.
// UserID is nil for ad-hoc, text-only entries that have no directory
// record behind them.
type PoolEntry struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	HospitalID uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	Date       time.Time  `db:"date" json:"date"`
	Name       string     `db:"name" json:"name"`
	Role       string     `db:"role" json:"role"`
	UserID     *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
