package shows

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"

	"gigboard/internal/artists"
	"gigboard/internal/errs"
	"gigboard/internal/models"
	"gigboard/internal/venues"
)

type DBLayer interface {
	List(ctx context.Context) ([]models.ShowListItem, error)
	GetByID(ctx context.Context, id int64) (*models.Show, error)
	ArtistExists(ctx context.Context, id int64) (bool, error)
	VenueExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, show *models.Show) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

type EventPublisher interface {
	PublishShowCreated(show models.Show) error
}

type ShowService struct {
	DB     DBLayer
	Cache  Cache
	Events EventPublisher

	// publicBaseURL is the root encoded into share QR codes.
	publicBaseURL string
}

func NewShowService(db DBLayer, cache Cache, events EventPublisher, publicBaseURL string) *ShowService {
	return &ShowService{DB: db, Cache: cache, Events: events, publicBaseURL: publicBaseURL}
}

// List returns every show, joined with artist and venue, from storage.
func (s *ShowService) List(ctx context.Context) ([]models.ShowListItem, error) {
	items, err := s.DB.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}
	return items, nil
}

// Create books an artist at a venue. Both foreign keys must reference
// existing rows and the start time must parse.
func (s *ShowService) Create(ctx context.Context, req models.ShowRequest) (*models.Show, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation(err)
	}

	startTime, err := models.ParseShowTime(req.StartTime)
	if err != nil {
		return nil, errs.Validationf("start_time: %v", err)
	}

	ok, err := s.DB.ArtistExists(ctx, req.ArtistID)
	if err != nil {
		return nil, errs.Persistence("check artist", err)
	}
	if !ok {
		return nil, errs.Validationf("artist %d does not exist", req.ArtistID)
	}

	ok, err = s.DB.VenueExists(ctx, req.VenueID)
	if err != nil {
		return nil, errs.Persistence("check venue", err)
	}
	if !ok {
		return nil, errs.Validationf("venue %d does not exist", req.VenueID)
	}

	show := models.Show{ArtistID: req.ArtistID, VenueID: req.VenueID, StartTime: startTime}
	if err := s.DB.Create(ctx, &show); err != nil {
		return nil, errs.Persistence("create show", err)
	}

	// A new booking changes the upcoming counts on both boards.
	s.Cache.Invalidate(ctx, venues.BoardKey, artists.BoardKey)
	if err := s.Events.PublishShowCreated(show); err != nil {
		fmt.Printf("Kafka publish error (show created): %v\n", err)
	}

	return &show, nil
}

// ShareQR renders a PNG QR code pointing at the show's public page, for
// posters and flyers.
func (s *ShowService) ShareQR(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.DB.GetByID(ctx, id); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/shows/%d", s.publicBaseURL, id)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR for show %d: %w", id, err)
	}
	return png, nil
}
