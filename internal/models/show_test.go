package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gigboard/internal/models"
)

func TestParseShowTime(t *testing.T) {
	cases := []string{
		"2019-05-21T21:30:00.000Z",
		"2019-05-21T21:30:00Z",
		"2019-05-21T21:30:00",
		"2019-05-21T21:30",
		"2019-05-21 21:30:00",
		"2019-05-21 21:30",
	}
	for _, value := range cases {
		parsed, err := models.ParseShowTime(value)
		assert.NoError(t, err, value)
		assert.Equal(t, 2019, parsed.Year(), value)
		assert.Equal(t, time.May, parsed.Month(), value)
		assert.Equal(t, 30, parsed.Minute(), value)
	}

	_, err := models.ParseShowTime("next friday")
	assert.Error(t, err)

	_, err = models.ParseShowTime("")
	assert.Error(t, err)
}

func TestShowRequestValidate(t *testing.T) {
	valid := models.ShowRequest{ArtistID: 1, VenueID: 2, StartTime: "2035-04-01T20:00:00Z"}
	assert.NoError(t, valid.Validate())

	req := valid
	req.ArtistID = 0
	assert.Error(t, req.Validate())

	req = valid
	req.VenueID = 0
	assert.Error(t, req.Validate())

	req = valid
	req.StartTime = "tonight"
	assert.Error(t, req.Validate())

	req = valid
	req.StartTime = ""
	assert.Error(t, req.Validate())
}

func TestNewFormOptions(t *testing.T) {
	opts := models.NewFormOptions()
	assert.Equal(t, models.States, opts.States)
	assert.Equal(t, models.Genres, opts.Genres)
}
