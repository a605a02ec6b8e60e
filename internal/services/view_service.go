package services

import (
	"context"
	"log"

	"motorsonline/internal/views"
)

type ViewService struct {
	Counter *views.Counter
}

// Increment is fire-and-forget: a failed bump is logged and swallowed so a
// flaky counter never breaks the listing page.
func (s *ViewService) Increment(ctx context.Context, carID int) {
	if err := s.Counter.Increment(ctx, carID); err != nil {
		log.Printf("Error incrementing views for car %d: %v", carID, err)
	}
}

func (s *ViewService) Count(ctx context.Context, carID int) (int64, error) {
	return s.Counter.Count(ctx, carID)
}

func (s *ViewService) Counts(ctx context.Context, carIDs []int) (map[int]int64, error) {
	return s.Counter.Counts(ctx, carIDs)
}
