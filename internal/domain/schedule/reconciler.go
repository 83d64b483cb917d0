package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/surgery"
	"github.com/orplan/orplan/internal/platform/apperr"
)

// SurgeryStore is the slice of the surgery service the scheduler needs.
type SurgeryStore interface {
	ListByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*surgery.Surgery, error)
	MarkersByRange(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) (map[uuid.UUID][]*surgery.TimeMarker, error)
	Patch(ctx context.Context, id uuid.UUID, p *surgery.Patch) (*surgery.Surgery, error)
}

// Edge names which end of an event a resize gesture dragged.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// knownState is the last-confirmed start/end/room for one surgery.
// Duration math on a move always reads from here, never from a stale
// gesture-start snapshot, so rapid consecutive drags do not drift.
type knownState struct {
	Start  time.Time
	End    time.Time
	RoomID *uuid.UUID
}

// Reconciler turns drag and resize gestures into partial updates while
// tracking a local known state per surgery. Local state is written
// synchronously before the store call so per-surgery ordering holds
// within one client; across clients the store is last-write-wins and the
// poller reconverges everyone.
type Reconciler struct {
	mu     sync.Mutex
	known  map[uuid.UUID]knownState
	store  SurgeryStore
	defDur time.Duration
}

func NewReconciler(store SurgeryStore, defaultDuration time.Duration) *Reconciler {
	return &Reconciler{
		known:  make(map[uuid.UUID]knownState),
		store:  store,
		defDur: defaultDuration,
	}
}

// Refresh replaces the tracked state from a windowed fetch. Entries not
// in the fetch are dropped.
func (r *Reconciler) Refresh(surgeries []*surgery.Surgery) {
	next := make(map[uuid.UUID]knownState, len(surgeries))
	for _, s := range surgeries {
		end := s.PlannedStart.Add(r.defDur)
		if s.ActualEnd != nil {
			end = *s.ActualEnd
		}
		next[s.ID] = knownState{Start: s.PlannedStart, End: end, RoomID: s.RoomID}
	}
	r.mu.Lock()
	r.known = next
	r.mu.Unlock()
}

// Known reports the tracked state for a surgery.
func (r *Reconciler) Known(id uuid.UUID) (start, end time.Time, roomID *uuid.UUID, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.known[id]
	return st.Start, st.End, st.RoomID, ok
}

// Move drops a surgery at a new start instant, preserving its duration.
// A nil newRoom keeps the current room. The store write carries start,
// end and room as one partial update; on store failure the local entry
// reverts and the caller must refetch the window.
func (r *Reconciler) Move(ctx context.Context, id uuid.UUID, newStart time.Time, newRoom *uuid.UUID) (*surgery.Surgery, error) {
	r.mu.Lock()
	prev, ok := r.known[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperr.NotFound("surgery %s is not in the tracked window", id)
	}
	duration := prev.End.Sub(prev.Start)
	next := knownState{Start: newStart, End: newStart.Add(duration), RoomID: prev.RoomID}
	if newRoom != nil {
		next.RoomID = newRoom
	}
	r.known[id] = next
	r.mu.Unlock()

	patch := &surgery.Patch{
		PlannedStart: &next.Start,
		ActualEnd:    timePtr(next.End),
		SetActualEnd: true,
		RoomID:       next.RoomID,
		SetRoomID:    true,
	}
	updated, err := r.store.Patch(ctx, id, patch)
	if err != nil {
		r.revert(id, next, prev)
		return nil, err
	}
	return updated, nil
}

// Resize moves exactly one edge. A result with end before start is
// rejected locally without touching the store or the tracked state.
func (r *Reconciler) Resize(ctx context.Context, id uuid.UUID, edge Edge, at time.Time) (*surgery.Surgery, error) {
	r.mu.Lock()
	prev, ok := r.known[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperr.NotFound("surgery %s is not in the tracked window", id)
	}
	next := prev
	switch edge {
	case EdgeStart:
		next.Start = at
	case EdgeEnd:
		next.End = at
	default:
		r.mu.Unlock()
		return nil, apperr.Validation("unknown edge: %s", edge)
	}
	if next.End.Before(next.Start) {
		r.mu.Unlock()
		return nil, apperr.Validation("end before start")
	}
	r.known[id] = next
	r.mu.Unlock()

	patch := &surgery.Patch{
		PlannedStart: &next.Start,
		ActualEnd:    timePtr(next.End),
		SetActualEnd: true,
	}
	updated, err := r.store.Patch(ctx, id, patch)
	if err != nil {
		r.revert(id, next, prev)
		return nil, err
	}
	return updated, nil
}

// revert restores prev only while the entry still holds the state the
// failed write set; a Refresh or a later gesture that replaced it in
// the meantime wins.
func (r *Reconciler) revert(id uuid.UUID, wrote, prev knownState) {
	r.mu.Lock()
	if cur, ok := r.known[id]; ok && cur == wrote {
		r.known[id] = prev
	}
	r.mu.Unlock()
}

func timePtr(t time.Time) *time.Time { return &t }
