package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/errs"
	"gigboard/internal/models"
)

// BoardKey is the cache key of the grouped venue listing.
const BoardKey = "board:venues"

type DBLayer interface {
	ListGroupedByLocation(ctx context.Context, now time.Time) ([]models.CityVenues, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error)
	GetByID(ctx context.Context, id int64) (*models.Venue, error)
	PastShows(ctx context.Context, venueID int64, now time.Time) ([]models.VenueShowInfo, error)
	UpcomingShows(ctx context.Context, venueID int64, now time.Time) ([]models.VenueShowInfo, error)
	Create(ctx context.Context, venue *models.Venue) error
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

type EventPublisher interface {
	PublishVenueChanged(action string, venue models.Venue) error
}

type VenueService struct {
	DB     DBLayer
	Cache  Cache
	Events EventPublisher
}

func NewVenueService(db DBLayer, cache Cache, events EventPublisher) *VenueService {
	return &VenueService{DB: db, Cache: cache, Events: events}
}

// ListGrouped returns every venue grouped by (city, state). Served from the
// cache when a fresh board is available.
func (s *VenueService) ListGrouped(ctx context.Context) ([]models.CityVenues, error) {
	var groups []models.CityVenues
	if s.Cache.Get(ctx, BoardKey, &groups) {
		return groups, nil
	}

	groups, err := s.DB.ListGroupedByLocation(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	s.Cache.Set(ctx, BoardKey, groups)
	return groups, nil
}

// Search matches the term anywhere in the venue name, case-insensitively.
// An empty or whitespace term matches everything.
func (s *VenueService) Search(ctx context.Context, term string) (*models.VenueSearchResponse, error) {
	data, err := s.DB.SearchByName(ctx, strings.TrimSpace(term), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	return &models.VenueSearchResponse{Count: len(data), Data: data}, nil
}

// GetDetail returns the venue page payload with past and upcoming shows
// split as of now.
func (s *VenueService) GetDetail(ctx context.Context, id int64) (*models.VenueDetail, error) {
	venue, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	past, err := s.DB.PastShows(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load past shows for venue %d: %w", id, err)
	}
	upcoming, err := s.DB.UpcomingShows(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming shows for venue %d: %w", id, err)
	}

	return &models.VenueDetail{
		Venue:              *venue,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create validates the form fields and inserts a new venue. Nothing is
// written when validation fails.
func (s *VenueService) Create(ctx context.Context, req models.VenueRequest) (*models.Venue, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation(err)
	}

	venue := req.ToVenue()
	if err := s.DB.Create(ctx, &venue); err != nil {
		return nil, errs.Persistence("create venue", err)
	}

	s.Cache.Invalidate(ctx, BoardKey)
	if err := s.Events.PublishVenueChanged("created", venue); err != nil {
		fmt.Printf("Kafka publish error (venue created): %v\n", err)
	}

	return &venue, nil
}

// Update overwrites the venue's mutable attributes. On any failure the
// stored venue is left exactly as it was.
func (s *VenueService) Update(ctx context.Context, id int64, req models.VenueRequest) (*models.Venue, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation(err)
	}

	venue, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := req.ToVenue()
	updated.ID = venue.ID
	if err := s.DB.Update(ctx, &updated); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		return nil, errs.Persistence("update venue", err)
	}

	s.Cache.Invalidate(ctx, BoardKey)
	if err := s.Events.PublishVenueChanged("updated", updated); err != nil {
		fmt.Printf("Kafka publish error (venue updated): %v\n", err)
	}

	return &updated, nil
}

// Delete removes the venue and its shows in one transaction.
func (s *VenueService) Delete(ctx context.Context, id int64) (*models.Venue, error) {
	venue, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Delete(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		return nil, errs.Persistence("delete venue", err)
	}

	s.Cache.Invalidate(ctx, BoardKey)
	if err := s.Events.PublishVenueChanged("deleted", *venue); err != nil {
		fmt.Printf("Kafka publish error (venue deleted): %v\n", err)
	}

	return venue, nil
}
