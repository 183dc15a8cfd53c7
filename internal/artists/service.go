package artists

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/errs"
	"gigboard/internal/models"
	"gigboard/internal/venues"
)

// BoardKey is the cache key of the flat artist listing.
const BoardKey = "board:artists"

type DBLayer interface {
	List(ctx context.Context) ([]models.ArtistListItem, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error)
	GetByID(ctx context.Context, id int64) (*models.Artist, error)
	PastShows(ctx context.Context, artistID int64, now time.Time) ([]models.ArtistShowInfo, error)
	UpcomingShows(ctx context.Context, artistID int64, now time.Time) ([]models.ArtistShowInfo, error)
	Create(ctx context.Context, artist *models.Artist) error
	Update(ctx context.Context, artist *models.Artist) error
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

type EventPublisher interface {
	PublishArtistChanged(action string, artist models.Artist) error
}

type ArtistService struct {
	DB     DBLayer
	Cache  Cache
	Events EventPublisher
}

func NewArtistService(db DBLayer, cache Cache, events EventPublisher) *ArtistService {
	return &ArtistService{DB: db, Cache: cache, Events: events}
}

// List returns every artist, unpartitioned.
func (s *ArtistService) List(ctx context.Context) ([]models.ArtistListItem, error) {
	var items []models.ArtistListItem
	if s.Cache.Get(ctx, BoardKey, &items) {
		return items, nil
	}

	items, err := s.DB.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	s.Cache.Set(ctx, BoardKey, items)
	return items, nil
}

// Search matches the term anywhere in the artist name, case-insensitively.
func (s *ArtistService) Search(ctx context.Context, term string) (*models.ArtistSearchResponse, error) {
	data, err := s.DB.SearchByName(ctx, strings.TrimSpace(term), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}
	return &models.ArtistSearchResponse{Count: len(data), Data: data}, nil
}

// GetDetail returns the artist page payload with past and upcoming shows
// split as of now.
func (s *ArtistService) GetDetail(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	artist, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	past, err := s.DB.PastShows(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load past shows for artist %d: %w", id, err)
	}
	upcoming, err := s.DB.UpcomingShows(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming shows for artist %d: %w", id, err)
	}

	return &models.ArtistDetail{
		Artist:             *artist,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create validates the form fields and inserts a new artist.
func (s *ArtistService) Create(ctx context.Context, req models.ArtistRequest) (*models.Artist, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation(err)
	}

	artist := req.ToArtist()
	if err := s.DB.Create(ctx, &artist); err != nil {
		return nil, errs.Persistence("create artist", err)
	}

	s.Cache.Invalidate(ctx, BoardKey)
	if err := s.Events.PublishArtistChanged("created", artist); err != nil {
		fmt.Printf("Kafka publish error (artist created): %v\n", err)
	}

	return &artist, nil
}

// Update overwrites the artist's mutable attributes. A rejected update
// leaves the stored artist untouched.
func (s *ArtistService) Update(ctx context.Context, id int64, req models.ArtistRequest) (*models.Artist, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation(err)
	}

	artist, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := req.ToArtist()
	updated.ID = artist.ID
	if err := s.DB.Update(ctx, &updated); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		return nil, errs.Persistence("update artist", err)
	}

	s.Cache.Invalidate(ctx, BoardKey)
	if err := s.Events.PublishArtistChanged("updated", updated); err != nil {
		fmt.Printf("Kafka publish error (artist updated): %v\n", err)
	}

	return &updated, nil
}

// Delete removes the artist and their shows in one transaction.
func (s *ArtistService) Delete(ctx context.Context, id int64) (*models.Artist, error) {
	artist, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Delete(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		return nil, errs.Persistence("delete artist", err)
	}

	// The cascade removes the artist's shows, which changes the upcoming
	// counts on the venue board too.
	s.Cache.Invalidate(ctx, BoardKey, venues.BoardKey)
	if err := s.Events.PublishArtistChanged("deleted", *artist); err != nil {
		fmt.Printf("Kafka publish error (artist deleted): %v\n", err)
	}

	return artist, nil
}
