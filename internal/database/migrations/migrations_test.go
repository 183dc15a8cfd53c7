package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"gigboard/internal/database/migrations"
	"gigboard/internal/models"
)

func openTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	return bun.NewDB(sqldb, sqlitedialect.New())
}

func TestCreateTablesIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, migrations.CreateTables(ctx, db))
	// IF NOT EXISTS makes the second run a no-op
	assert.NoError(t, migrations.CreateTables(ctx, db))

	count, err := db.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeed(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, migrations.CreateTables(ctx, db))
	require.NoError(t, migrations.Seed(ctx, db))

	venues, err := db.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, venues)

	artists, err := db.NewSelect().Model((*models.Artist)(nil)).Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, artists)

	shows, err := db.NewSelect().Model((*models.Show)(nil)).Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 5, shows)

	// Seeding again must not duplicate the demo data
	require.NoError(t, migrations.Seed(ctx, db))
	venues, err = db.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, venues)
}

func TestDropTables(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, migrations.CreateTables(ctx, db))
	require.NoError(t, migrations.DropTables(ctx, db))

	_, err := db.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	assert.Error(t, err)
}
