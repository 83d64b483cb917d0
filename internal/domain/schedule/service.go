package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/surgery"
)

// Window is the projected content of one view window.
type Window struct {
	Range  Range   `json:"range"`
	Events []Event `json:"events"`
}

// Service resolves view windows into projected events and owns the
// drag/resize reconciler for the fetched window.
type Service struct {
	store      SurgeryStore
	reconciler *Reconciler
	defDur     time.Duration

	mu        sync.Mutex
	lastHosp  uuid.UUID
	lastRange Range
	hasWindow bool
}

func NewService(store SurgeryStore, defaultDuration time.Duration) *Service {
	return &Service{
		store:      store,
		reconciler: NewReconciler(store, defaultDuration),
		defDur:     defaultDuration,
	}
}

func (s *Service) Reconciler() *Reconciler { return s.reconciler }

// ActiveWindow reports the most recently fetched window; the poller
// keeps exactly that window fresh.
func (s *Service) ActiveWindow() (uuid.UUID, Range, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHosp, s.lastRange, s.hasWindow
}

// FetchWindow resolves the range, loads surgeries and markers, projects
// them and seeds the reconciler. A new window replaces the previous one
// wholesale; results are never merged.
func (s *Service) FetchWindow(ctx context.Context, hospitalID uuid.UUID, ref time.Time, view View) (*Window, error) {
	rng, err := ResolveRange(ref, view)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastHosp, s.lastRange, s.hasWindow = hospitalID, rng, true
	s.mu.Unlock()

	surgeries, err := s.store.ListByRange(ctx, hospitalID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	markers, err := s.store.MarkersByRange(ctx, hospitalID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	s.reconciler.Refresh(surgeries)

	events := make([]Event, 0, len(surgeries))
	for _, sg := range surgeries {
		events = append(events, ProjectEvent(sg, markers[sg.ID], s.defDur))
	}
	return &Window{Range: rng, Events: events}, nil
}

func (s *Service) Move(ctx context.Context, id uuid.UUID, newStart time.Time, newRoom *uuid.UUID) (*surgery.Surgery, error) {
	return s.reconciler.Move(ctx, id, newStart, newRoom)
}

func (s *Service) Resize(ctx context.Context, id uuid.UUID, edge Edge, at time.Time) (*surgery.Surgery, error) {
	return s.reconciler.Resize(ctx, id, edge, at)
}
