package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/surgery"
)

// State is the derived life-cycle color of a projected event. The
// progression is scheduled → in-progress → closing → completed, driven
// by which clinical markers carry a time; cancelled absorbs everything.
type State string

const (
	StateScheduled  State = "scheduled"
	StateInProgress State = "in-progress"
	StateClosing    State = "closing"
	StateCompleted  State = "completed"
	StateCancelled  State = "cancelled"
)

// Event is the presentation form of a surgery for one view window.
type Event struct {
	SurgeryID    uuid.UUID  `json:"surgery_id"`
	RoomID       *uuid.UUID `json:"room_id,omitempty"`
	Title        string     `json:"title"`
	DisplayStart time.Time  `json:"display_start"`
	DisplayEnd   time.Time  `json:"display_end"`
	State        State      `json:"state"`
	IsCancelled  bool       `json:"is_cancelled"`
}

// markerTime returns the recorded time of the first marker matching one
// of the codes, or nil when none of them has been documented.
func markerTime(markers []*surgery.TimeMarker, codes ...string) *time.Time {
	for _, code := range codes {
		for _, m := range markers {
			if m.Code == code && m.Time != nil {
				return m.Time
			}
		}
	}
	return nil
}

// deriveState is the pure transition function over marker presence.
// Priority runs from the absorbing cancelled state down to the default.
func deriveState(cancelled bool, markers []*surgery.TimeMarker) State {
	switch {
	case cancelled:
		return StateCancelled
	case markerTime(markers, surgery.MarkerAnesthesiaEnd, surgery.MarkerAnesthesiaOut) != nil:
		return StateCompleted
	case markerTime(markers, surgery.MarkerSuture) != nil:
		return StateClosing
	case markerTime(markers, surgery.MarkerIncision) != nil:
		return StateInProgress
	default:
		return StateScheduled
	}
}

// ProjectEvent maps a stored surgery plus its markers to a display event.
// Documented incision/suture times win over planned times for display
// only; the stored record is never touched. Deterministic and free of
// side effects.
func ProjectEvent(s *surgery.Surgery, markers []*surgery.TimeMarker, defaultDuration time.Duration) Event {
	plannedDuration := defaultDuration
	if s.ActualEnd != nil && s.ActualEnd.After(s.PlannedStart) {
		plannedDuration = s.ActualEnd.Sub(s.PlannedStart)
	}

	displayStart := s.PlannedStart
	incision := markerTime(markers, surgery.MarkerIncision)
	if incision != nil {
		displayStart = *incision
	}

	var displayEnd time.Time
	suture := markerTime(markers, surgery.MarkerSuture)
	switch {
	case incision != nil && suture != nil:
		displayEnd = *suture
	case incision != nil:
		displayEnd = displayStart.Add(plannedDuration)
	case s.ActualEnd != nil:
		displayEnd = *s.ActualEnd
	default:
		displayEnd = s.PlannedStart.Add(plannedDuration)
	}

	cancelled := s.Status == surgery.StatusCancelled
	return Event{
		SurgeryID:    s.ID,
		RoomID:       s.RoomID,
		Title:        s.PlannedSurgery,
		DisplayStart: displayStart,
		DisplayEnd:   displayEnd,
		State:        deriveState(cancelled, markers),
		IsCancelled:  cancelled,
	}
}
