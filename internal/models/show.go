package models

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

type Show struct {
	bun.BaseModel `bun:"table:shows"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ArtistID  int64     `bun:"artist_id,notnull" json:"artist_id"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	StartTime time.Time `bun:"start_time,notnull" json:"start_time"`

	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"-"`
	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"-"`
}

// Accepted start_time layouts: RFC3339 plus the browser datetime-local
// formats, with and without seconds.
var showTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseShowTime parses a submitted start_time against the accepted layouts.
func ParseShowTime(value string) (time.Time, error) {
	for _, layout := range showTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("must be a valid timestamp")
}

// ShowRequest carries the show creation form fields.
type ShowRequest struct {
	ArtistID  int64  `json:"artist_id"`
	VenueID   int64  `json:"venue_id"`
	StartTime string `json:"start_time"`
}

func (r ShowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtistID, validation.Required),
		validation.Field(&r.VenueID, validation.Required),
		validation.Field(&r.StartTime, validation.Required, validation.By(func(value interface{}) error {
			_, err := ParseShowTime(value.(string))
			return err
		})),
	)
}

// ShowListItem is one row of the /shows listing, joined with the booked
// artist and venue.
type ShowListItem struct {
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// FormOptions lists the closed vocabularies a client needs to render the
// create/edit forms.
type FormOptions struct {
	States []string `json:"states"`
	Genres []string `json:"genres"`
}

// NewFormOptions returns the current form vocabularies.
func NewFormOptions() FormOptions {
	return FormOptions{States: States, Genres: Genres}
}
