package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"gigboard/internal/errs"
	"gigboard/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// upcomingCount is the per-venue aggregate row of the listing queries.
type upcomingCount struct {
	VenueID int64 `bun:"venue_id"`
	Num     int   `bun:"num"`
}

func (d *DB) upcomingCounts(ctx context.Context, now time.Time) (map[int64]int, error) {
	var rows []upcomingCount
	err := d.Bun.NewRaw(
		"SELECT venue_id, COUNT(*) AS num FROM shows WHERE start_time > ? GROUP BY venue_id",
		now,
	).Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.VenueID] = row.Num
	}
	return counts, nil
}

// ListGroupedByLocation returns every venue grouped by (city, state), each
// annotated with its number of upcoming shows as of now.
func (d *DB) ListGroupedByLocation(ctx context.Context, now time.Time) ([]models.CityVenues, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Column("id", "name", "city", "state").
		Order("state", "city", "name").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := d.upcomingCounts(ctx, now)
	if err != nil {
		return nil, err
	}

	// Group in insertion order; the query already sorts by location.
	groups := []models.CityVenues{}
	index := make(map[string]int)
	for _, v := range venues {
		key := v.City + "|" + v.State
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.CityVenues{City: v.City, State: v.State})
		}
		groups[i].Venues = append(groups[i].Venues, models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	return groups, nil
}

// SearchByName returns venues whose name contains the term,
// case-insensitively. An empty term matches every venue.
func (d *DB) SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Column("id", "name").
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("name").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := d.upcomingCounts(ctx, now)
	if err != nil {
		return nil, err
	}

	results := make([]models.VenueSummary, len(venues))
	for i, v := range venues {
		results[i] = models.VenueSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]}
	}
	return results, nil
}

// GetByID fetches one venue, translating a missing row into ErrNotFound.
func (d *DB) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("venue", id)
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (d *DB) venueShows(ctx context.Context, venueID int64, cond string, now time.Time) ([]models.VenueShowInfo, error) {
	rows := []models.VenueShowInfo{}
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("show.artist_id AS artist_id").
		ColumnExpr("a.name AS artist_name").
		ColumnExpr("a.image_link AS artist_image_link").
		ColumnExpr("show.start_time AS start_time").
		Join("JOIN artists a ON a.id = show.artist_id").
		Where("show.venue_id = ?", venueID).
		Where("show.start_time "+cond+" ?", now).
		Order("show.start_time").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PastShows lists the venue's shows with start_time at or before now.
func (d *DB) PastShows(ctx context.Context, venueID int64, now time.Time) ([]models.VenueShowInfo, error) {
	return d.venueShows(ctx, venueID, "<=", now)
}

// UpcomingShows lists the venue's shows with start_time after now.
func (d *DB) UpcomingShows(ctx context.Context, venueID int64, now time.Time) ([]models.VenueShowInfo, error) {
	return d.venueShows(ctx, venueID, ">", now)
}

// Create inserts the venue inside its own transaction and fills in the
// generated id.
func (d *DB) Create(ctx context.Context, venue *models.Venue) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(venue).Exec(ctx)
		return err
	})
}

// Update overwrites the venue's mutable attributes in one transaction.
// ErrNotFound when the id no longer references a row.
func (d *DB) Update(ctx context.Context, venue *models.Venue) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(venue).
			Column("name", "city", "state", "address", "phone", "genres",
				"image_link", "facebook_link", "website", "seeking_talent", "seeking_description").
			Where("id = ?", venue.ID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errs.NotFound("venue", venue.ID)
		}
		return nil
	})
}

// Delete removes the venue and, in the same transaction, every show booked
// there. A show must never outlive its venue.
func (d *DB) Delete(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Show)(nil)).
			Where("venue_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Venue)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errs.NotFound("venue", id)
		}
		return nil
	})
}
