package migrations

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"gigboard/internal/models"
)

// Tables in dependency order; shows last because it references both parents.
var tables = []interface{}{
	(*models.Venue)(nil),
	(*models.Artist)(nil),
	(*models.Show)(nil),
}

// CreateTables creates the venues, artists and shows tables if missing.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DropTables removes all tables, shows first.
func DropTables(ctx context.Context, db *bun.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(tables[i]).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Seed loads the demo directory data. Safe to skip in production; gated by
// DB_SEED. Inserts nothing when venues already exist.
func Seed(ctx context.Context, db *bun.DB) error {
	count, err := db.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	venues := []models.Venue{
		{
			Name:               "The Musical Hop",
			City:               "San Francisco",
			State:              "CA",
			Address:            "1015 Folsom Street",
			Phone:              "1231231234",
			Genres:             models.GenreList{"Jazz", "Reggae", "Classical", "Folk"},
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&auto=format&fit=crop&w=400&q=60",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			Website:            "https://www.themusicalhop.com",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		},
		{
			Name:         "The Dueling Pianos Bar",
			City:         "New York",
			State:        "NY",
			Address:      "335 Delancey Street",
			Phone:        "9140031132",
			Genres:       models.GenreList{"Classical", "R&B", "Hip-Hop"},
			ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&auto=format&fit=crop&w=750&q=80",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			Website:      "https://www.theduelingpianos.com",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			City:         "San Francisco",
			State:        "CA",
			Address:      "34 Whiskey Moore Ave",
			Phone:        "4150004949",
			Genres:       models.GenreList{"Rock n Roll", "Jazz", "Classical", "Folk"},
			ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&auto=format&fit=crop&w=747&q=80",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			Website:      "https://www.parksquarelivemusicandcoffee.com",
		},
	}
	if _, err := db.NewInsert().Model(&venues).Exec(ctx); err != nil {
		return err
	}

	artists := []models.Artist{
		{
			Name:               "Guns N Petals",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "3261235000",
			Genres:             models.GenreList{"Rock n Roll"},
			ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&auto=format&fit=crop&w=300&q=80",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			Website:            "https://www.gunsnpetalsband.com",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
		{
			Name:      "Matt Quevedo",
			City:      "New York",
			State:     "NY",
			Phone:     "3004005000",
			Genres:    models.GenreList{"Jazz"},
			ImageLink: "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&auto=format&fit=crop&w=334&q=80",
		},
		{
			Name:      "The Wild Sax Band",
			City:      "San Francisco",
			State:     "CA",
			Phone:     "4325040400",
			Genres:    models.GenreList{"Jazz", "Classical"},
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&auto=format&fit=crop&w=794&q=80",
		},
	}
	if _, err := db.NewInsert().Model(&artists).Exec(ctx); err != nil {
		return err
	}

	shows := []models.Show{
		{ArtistID: artists[0].ID, VenueID: venues[0].ID, StartTime: time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)},
		{ArtistID: artists[1].ID, VenueID: venues[2].ID, StartTime: time.Date(2019, 6, 15, 23, 0, 0, 0, time.UTC)},
		{ArtistID: artists[2].ID, VenueID: venues[2].ID, StartTime: time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)},
		{ArtistID: artists[2].ID, VenueID: venues[2].ID, StartTime: time.Date(2035, 4, 8, 20, 0, 0, 0, time.UTC)},
		{ArtistID: artists[2].ID, VenueID: venues[2].ID, StartTime: time.Date(2035, 4, 15, 20, 0, 0, 0, time.UTC)},
	}
	if _, err := db.NewInsert().Model(&shows).Exec(ctx); err != nil {
		return err
	}

	return nil
}
