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

type upcomingCount struct {
	ArtistID int64 `bun:"artist_id"`
	Num      int   `bun:"num"`
}

func (d *DB) upcomingCounts(ctx context.Context, now time.Time) (map[int64]int, error) {
	var rows []upcomingCount
	err := d.Bun.NewRaw(
		"SELECT artist_id, COUNT(*) AS num FROM shows WHERE start_time > ? GROUP BY artist_id",
		now,
	).Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.ArtistID] = row.Num
	}
	return counts, nil
}

// List returns every artist as a flat id/name listing.
func (d *DB) List(ctx context.Context) ([]models.ArtistListItem, error) {
	items := []models.ArtistListItem{}
	err := d.Bun.NewSelect().
		Model((*models.Artist)(nil)).
		Column("id", "name").
		Order("name").
		Scan(ctx, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SearchByName returns artists whose name contains the term,
// case-insensitively. An empty term matches every artist.
func (d *DB) SearchByName(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	var artists []models.Artist
	err := d.Bun.NewSelect().
		Model(&artists).
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

	results := make([]models.ArtistSummary, len(artists))
	for i, a := range artists {
		results[i] = models.ArtistSummary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]}
	}
	return results, nil
}

// GetByID fetches one artist, translating a missing row into ErrNotFound.
func (d *DB) GetByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("artist", id)
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (d *DB) artistShows(ctx context.Context, artistID int64, cond string, now time.Time) ([]models.ArtistShowInfo, error) {
	rows := []models.ArtistShowInfo{}
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("show.venue_id AS venue_id").
		ColumnExpr("v.name AS venue_name").
		ColumnExpr("v.image_link AS venue_image_link").
		ColumnExpr("show.start_time AS start_time").
		Join("JOIN venues v ON v.id = show.venue_id").
		Where("show.artist_id = ?", artistID).
		Where("show.start_time "+cond+" ?", now).
		Order("show.start_time").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PastShows lists the artist's shows with start_time at or before now.
func (d *DB) PastShows(ctx context.Context, artistID int64, now time.Time) ([]models.ArtistShowInfo, error) {
	return d.artistShows(ctx, artistID, "<=", now)
}

// UpcomingShows lists the artist's shows with start_time after now.
func (d *DB) UpcomingShows(ctx context.Context, artistID int64, now time.Time) ([]models.ArtistShowInfo, error) {
	return d.artistShows(ctx, artistID, ">", now)
}

// Create inserts the artist inside its own transaction and fills in the
// generated id.
func (d *DB) Create(ctx context.Context, artist *models.Artist) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(artist).Exec(ctx)
		return err
	})
}

// Update overwrites the artist's mutable attributes in one transaction.
func (d *DB) Update(ctx context.Context, artist *models.Artist) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(artist).
			Column("name", "city", "state", "phone", "genres",
				"image_link", "facebook_link", "website", "seeking_venue", "seeking_description").
			Where("id = ?", artist.ID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errs.NotFound("artist", artist.ID)
		}
		return nil
	})
}

// Delete removes the artist and, in the same transaction, every show they
// were booked for.
func (d *DB) Delete(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Show)(nil)).
			Where("artist_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Artist)(nil)).
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
			return errs.NotFound("artist", id)
		}
		return nil
	})
}
