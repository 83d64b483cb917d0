package room

import (
	"time"

	"github.com/google/uuid"
)

// Room types. OP rooms appear on the operating plan; PACU rooms are
// recovery bays and are excluded from scheduling views.
const (
	TypeOP   = "OP"
	TypePACU = "PACU"
)

// SurgeryRoom maps to the surgery_room table.
type SurgeryRoom struct {
	ID         uuid.UUID `db:"id" json:"id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	Name       string    `db:"name" json:"name"`
	RoomType   string    `db:"room_type" json:"room_type"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
