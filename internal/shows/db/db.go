package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"gigboard/internal/errs"
	"gigboard/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// List returns every show joined with its artist and venue, ordered by
// start time.
func (d *DB) List(ctx context.Context) ([]models.ShowListItem, error) {
	rows := []models.ShowListItem{}
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("show.venue_id AS venue_id").
		ColumnExpr("v.name AS venue_name").
		ColumnExpr("show.artist_id AS artist_id").
		ColumnExpr("a.name AS artist_name").
		ColumnExpr("a.image_link AS artist_image_link").
		ColumnExpr("show.start_time AS start_time").
		Join("JOIN venues v ON v.id = show.venue_id").
		Join("JOIN artists a ON a.id = show.artist_id").
		Order("show.start_time").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches one show, translating a missing row into ErrNotFound.
func (d *DB) GetByID(ctx context.Context, id int64) (*models.Show, error) {
	var show models.Show
	err := d.Bun.NewSelect().
		Model(&show).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("show", id)
	}
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// ArtistExists reports whether the artist id references a row.
func (d *DB) ArtistExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Artist)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

// VenueExists reports whether the venue id references a row.
func (d *DB) VenueExists(ctx context.Context, id int64) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Venue)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

// Create inserts the show inside its own transaction and fills in the
// generated id.
func (d *DB) Create(ctx context.Context, show *models.Show) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(show).Exec(ctx)
		return err
	})
}
