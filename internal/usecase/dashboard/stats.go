package dashboard

import (
	"context"

	domain "github.com/sparklewash/carwash-booking/internal/domain/booking"
)

// Stats recomputes the read-side rollups on every call. Nothing here is
// cached or maintained incrementally; the booking table is the only
// source of truth.
type Stats struct {
	repo domain.Repository
}

func NewStats(repo domain.Repository) *Stats {
	return &Stats{repo: repo}
}

type AdminStats struct {
	Counts  domain.StatusCounts `json:"counts"`
	Revenue float64             `json:"revenue"`
}

// Admin returns booking counts by status plus revenue, where revenue is
// the sum of price over completed bookings only.
func (s *Stats) Admin(ctx context.Context) (*AdminStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		Counts:  counts,
		Revenue: revenue,
	}, nil
}

// User returns the caller's own booking counts.
func (s *Stats) User(ctx context.Context, userID uint) (domain.StatusCounts, error) {
	return s.repo.CountUserByStatus(ctx, userID)
}

// Occupancy reports non-cancelled bookings per slot for one date; the
// same numbers the slot-capacity rule counts against.
func (s *Stats) Occupancy(ctx context.Context, date string) (map[string]int, error) {
	return s.repo.SlotOccupancy(ctx, date)
}
