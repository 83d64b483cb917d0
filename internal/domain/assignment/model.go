package assignment

import (
	"time"

	"github.com/google/uuid"
)

// RoomStaffAssignment binds a staff-pool entry to a room for the whole
// day. The (room_id, pool_id) pair is unique.
type RoomStaffAssignment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RoomID    uuid.UUID `db:"room_id" json:"room_id"`
	PoolID    uuid.UUID `db:"pool_id" json:"pool_id"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PlannedStaffAssignment binds a staff-pool entry to a single surgery.
// The (surgery_id, pool_id) pair is unique. A pool entry may hold a room
// assignment and surgery assignments at the same time.
type PlannedStaffAssignment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SurgeryID uuid.UUID `db:"surgery_id" json:"surgery_id"`
	PoolID    uuid.UUID `db:"pool_id" json:"pool_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DropTarget is the sum type a staff drag gesture lands on. Exactly one
// branch is set; anything else is an unrecognized target and a no-op.
type DropTarget struct {
	Room    *RoomTarget    `json:"room,omitempty"`
	Surgery *SurgeryTarget `json:"surgery,omitempty"`
}

type RoomTarget struct {
	RoomID uuid.UUID `json:"room_id"`
	Date   time.Time `json:"date"`
}

type SurgeryTarget struct {
	SurgeryID uuid.UUID `json:"surgery_id"`
}

// StaffDrag is the payload carried by the gesture.
type StaffDrag struct {
	PoolID uuid.UUID `json:"pool_id"`
}

// DropOutcome reports what a drop dispatch did.
type DropOutcome struct {
	Assigned bool       `json:"assigned"`
	RoomID   *uuid.UUID `json:"room_id,omitempty"`
	Surgery  *uuid.UUID `json:"surgery_id,omitempty"`
}
