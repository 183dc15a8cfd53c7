package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

type Artist struct {
	bun.BaseModel `bun:"table:artists"`

	ID                 int64     `bun:"id,pk,autoincrement" json:"id"`
	Name               string    `bun:"name,notnull" json:"name"`
	City               string    `bun:"city,notnull" json:"city"`
	State              string    `bun:"state,notnull" json:"state"`
	Phone              string    `bun:"phone,notnull" json:"phone"`
	Genres             GenreList `bun:"genres" json:"genres"`
	ImageLink          string    `bun:"image_link" json:"image_link"`
	FacebookLink       string    `bun:"facebook_link" json:"facebook_link"`
	Website            string    `bun:"website" json:"website"`
	SeekingVenue       bool      `bun:"seeking_venue,default:false" json:"seeking_venue"`
	SeekingDescription string    `bun:"seeking_description" json:"seeking_description"`
}

// ArtistRequest carries the artist create/edit form fields.
type ArtistRequest struct {
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Genres             GenreList `json:"genres"`
	ImageLink          string    `json:"image_link"`
	FacebookLink       string    `json:"facebook_link"`
	Website            string    `json:"website_link"`
	SeekingVenue       bool      `json:"seeking_venue"`
	SeekingDescription string    `json:"seeking_description"`
}

func (r ArtistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.State, validation.Required, validation.In(stateRuleValues()...)),
		validation.Field(&r.Phone, validation.Required, validation.Match(phonePattern)),
		validation.Field(&r.Genres, validation.Required, validation.Each(validation.In(genreRuleValues()...))),
		validation.Field(&r.ImageLink, is.URL),
		validation.Field(&r.FacebookLink, is.URL),
		validation.Field(&r.Website, is.URL),
	)
}

func (r ArtistRequest) ToArtist() Artist {
	return Artist{
		Name:               r.Name,
		City:               r.City,
		State:              r.State,
		Phone:              r.Phone,
		Genres:             r.Genres,
		ImageLink:          r.ImageLink,
		FacebookLink:       r.FacebookLink,
		Website:            r.Website,
		SeekingVenue:       r.SeekingVenue,
		SeekingDescription: r.SeekingDescription,
	}
}

// ArtistSummary is the search row with the upcoming-show aggregate.
type ArtistSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistListItem is the flat /artists listing row.
type ArtistListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ArtistSearchResponse struct {
	Count int             `json:"count"`
	Data  []ArtistSummary `json:"data"`
}

// ArtistShowInfo is one row of an artist's past/upcoming show tables.
type ArtistShowInfo struct {
	VenueID        int64     `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ArtistDetail is the full artist page payload.
type ArtistDetail struct {
	Artist

	PastShows          []ArtistShowInfo `json:"past_shows"`
	UpcomingShows      []ArtistShowInfo `json:"upcoming_shows"`
	PastShowsCount     int              `json:"past_shows_count"`
	UpcomingShowsCount int              `json:"upcoming_shows_count"`
}
