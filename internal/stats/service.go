package stats

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"gigboard/internal/models"
)

// Service computes directory-wide aggregates for the landing page.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// DirectoryStats are the front-page counters.
type DirectoryStats struct {
	Venues        int `json:"venues"`
	Artists       int `json:"artists"`
	Shows         int `json:"shows"`
	UpcomingShows int `json:"upcoming_shows"`
}

// GetDirectoryStats counts venues, artists and shows, and how many shows
// are still ahead as of now.
func (s *Service) GetDirectoryStats(ctx context.Context) (*DirectoryStats, error) {
	venues, err := s.db.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	if err != nil {
		return nil, err
	}

	artists, err := s.db.NewSelect().Model((*models.Artist)(nil)).Count(ctx)
	if err != nil {
		return nil, err
	}

	shows, err := s.db.NewSelect().Model((*models.Show)(nil)).Count(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.db.NewSelect().
		Model((*models.Show)(nil)).
		Where("start_time > ?", time.Now()).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DirectoryStats{
		Venues:        venues,
		Artists:       artists,
		Shows:         shows,
		UpcomingShows: upcoming,
	}, nil
}
