package staffpool

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type Service struct {
	users UserRepository
	pool  PoolRepository
}

func NewService(users UserRepository, pool PoolRepository) *Service {
	return &Service{users: users, pool: pool}
}

func (s *Service) ListPool(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*PoolEntry, error) {
	return s.pool.ListByDate(ctx, hospitalID, truncateToDate(date))
}

// ListStaffOptions returns the directory users eligible for planning,
// deduplicated by id.
func (s *Service) ListStaffOptions(ctx context.Context, hospitalID uuid.UUID) ([]*StaffUser, error) {
	users, err := s.users.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(users))
	var result []*StaffUser
	for _, u := range users {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		result = append(result, u)
	}
	return result, nil
}

// AddToPool plans one staff member for the date. A directory user can be
// pooled at most once per date; ad-hoc entries (nil userID) only need a
// name.
func (s *Service) AddToPool(ctx context.Context, hospitalID uuid.UUID, date time.Time, name, role string, userID *uuid.UUID) (*PoolEntry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name is required")
	}
	if !ValidRoles[role] {
		return nil, apperr.Validation("invalid role: %s", role)
	}
	date = truncateToDate(date)
	if userID != nil {
		pooled, err := s.pool.ExistsForUserAndDate(ctx, hospitalID, *userID, date)
		if err != nil {
			return nil, apperr.Transport("pool lookup failed", err)
		}
		if pooled {
			return nil, apperr.Conflict("user already planned for %s", date.Format("2006-01-02"))
		}
	}
	e := &PoolEntry{
		HospitalID: hospitalID,
		Date:       date,
		Name:       name,
		Role:       role,
		UserID:     userID,
	}
	if err := s.pool.Create(ctx, e); err != nil {
		return nil, apperr.FromStore(err, "", "user already planned for the date")
	}
	return e, nil
}

func (s *Service) RemoveFromPool(ctx context.Context, id uuid.UUID) error {
	// Removing an entry that is already gone is success.
	return s.pool.Delete(ctx, id)
}

// PromoteAdHocToUser creates a directory record for a free-text pool
// name and re-links every ad-hoc entry carrying that name.
func (s *Service) PromoteAdHocToUser(ctx context.Context, hospitalID uuid.UUID, name, role string) (*StaffUser, int, error) {
	if strings.TrimSpace(name) == "" {
		return nil, 0, apperr.Validation("name is required")
	}
	if !ValidRoles[role] {
		return nil, 0, apperr.Validation("invalid role: %s", role)
	}
	u := &StaffUser{HospitalID: hospitalID, Name: name, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, 0, apperr.FromStore(err, "", "staff user already exists")
	}
	relinked, err := s.pool.RelinkUser(ctx, hospitalID, name, u.ID)
	if err != nil {
		return nil, 0, apperr.Transport("relinking pool entries failed", err)
	}
	return u, relinked, nil
}

// FilterOptions is a pure substring match over name and email. It is a
// display convenience, not access control.
func FilterOptions(options []*StaffUser, query string) []*StaffUser {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return options
	}
	var result []*StaffUser
	for _, u := range options {
		if strings.Contains(strings.ToLower(u.Name), query) {
			result = append(result, u)
			continue
		}
		if u.Email != nil && strings.Contains(strings.ToLower(*u.Email), query) {
			result = append(result, u)
		}
	}
	return result
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
