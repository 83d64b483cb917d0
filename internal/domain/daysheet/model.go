package daysheet

import (
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/patient"
	"github.com/orplan/orplan/internal/domain/room"
	"github.com/orplan/orplan/internal/domain/surgery"
)

// UnassignedRoom labels the bucket for surgeries without a room. It
// always sorts after every named room.
const UnassignedRoom = "unassigned"

// Input is everything the builder needs for one day. Patients are keyed
// by id, markers by surgery, staff names by room.
type Input struct {
	Date      time.Time
	Surgeries []*surgery.Surgery
	Markers   map[uuid.UUID][]*surgery.TimeMarker
	Rooms     []*room.SurgeryRoom
	Patients  map[uuid.UUID]*patient.Patient
	RoomStaff map[uuid.UUID][]string
}

// Row is one printed surgery line.
type Row struct {
	Date         time.Time  `json:"date"`
	Admission    time.Time  `json:"admission"`
	Incision     *time.Time `json:"incision,omitempty"`
	Surgeon      string     `json:"surgeon"`
	PatientName  string     `json:"patient_name"`
	PatientBirth time.Time  `json:"patient_birth"`
	Procedure    string     `json:"procedure"`
	Notes        string     `json:"notes"`
	Cancelled    bool       `json:"cancelled"`
}

// Segment is a run of rows for one room on one page. ShowHeader is
// false when the room's table continues from the previous page.
type Segment struct {
	RoomName   string   `json:"room_name"`
	StaffNames []string `json:"staff_names,omitempty"`
	ShowHeader bool     `json:"show_header"`
	Rows       []Row    `json:"rows"`
}

// Page is one printed page.
type Page struct {
	Number   int       `json:"number"`
	Segments []Segment `json:"segments"`
}

// DaySheet is the paginated, room-grouped print layout for one day.
type DaySheet struct {
	Date  time.Time `json:"date"`
	Pages []Page    `json:"pages"`
}
