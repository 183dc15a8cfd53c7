package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues"`

	ID                 int64     `bun:"id,pk,autoincrement" json:"id"`
	Name               string    `bun:"name,notnull" json:"name"`
	City               string    `bun:"city,notnull" json:"city"`
	State              string    `bun:"state,notnull" json:"state"`
	Address            string    `bun:"address,notnull" json:"address"`
	Phone              string    `bun:"phone" json:"phone"`
	Genres             GenreList `bun:"genres" json:"genres"`
	ImageLink          string    `bun:"image_link" json:"image_link"`
	FacebookLink       string    `bun:"facebook_link" json:"facebook_link"`
	Website            string    `bun:"website" json:"website"`
	SeekingTalent      bool      `bun:"seeking_talent,default:false" json:"seeking_talent"`
	SeekingDescription string    `bun:"seeking_description" json:"seeking_description"`
}

// VenueRequest carries the venue create/edit form fields.
type VenueRequest struct {
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Genres             GenreList `json:"genres"`
	ImageLink          string    `json:"image_link"`
	FacebookLink       string    `json:"facebook_link"`
	Website            string    `json:"website_link"`
	SeekingTalent      bool      `json:"seeking_talent"`
	SeekingDescription string    `json:"seeking_description"`
}

func (r VenueRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.State, validation.Required, validation.In(stateRuleValues()...)),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.Phone, validation.Match(phonePattern)),
		validation.Field(&r.Genres, validation.Required, validation.Each(validation.In(genreRuleValues()...))),
		validation.Field(&r.ImageLink, is.URL),
		validation.Field(&r.FacebookLink, is.URL),
		validation.Field(&r.Website, is.URL),
	)
}

// ToVenue builds the entity persisted for this request.
func (r VenueRequest) ToVenue() Venue {
	return Venue{
		Name:               r.Name,
		City:               r.City,
		State:              r.State,
		Address:            r.Address,
		Phone:              r.Phone,
		Genres:             r.Genres,
		ImageLink:          r.ImageLink,
		FacebookLink:       r.FacebookLink,
		Website:            r.Website,
		SeekingTalent:      r.SeekingTalent,
		SeekingDescription: r.SeekingDescription,
	}
}

// VenueSummary is the listing/search row: id, name and the number of
// upcoming shows computed at query time.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// CityVenues groups venues sharing a (city, state) pair.
type CityVenues struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueSearchResponse mirrors the search page payload.
type VenueSearchResponse struct {
	Count int            `json:"count"`
	Data  []VenueSummary `json:"data"`
}

// VenueShowInfo is one row of a venue's past/upcoming show tables.
type VenueShowInfo struct {
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueDetail is the full venue page payload.
type VenueDetail struct {
	Venue

	PastShows          []VenueShowInfo `json:"past_shows"`
	UpcomingShows      []VenueShowInfo `json:"upcoming_shows"`
	PastShowsCount     int             `json:"past_shows_count"`
	UpcomingShowsCount int             `json:"upcoming_shows_count"`
}
