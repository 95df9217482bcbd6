package main

import (
	"context"
	"math/rand"
	"os"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitea.kood.tech/petrkubec/match-me/survey/survey"
)

func TestInt64s(t *testing.T) {
	assert.Equal(t, []int64{1, 0, 3}, int64s(survey.Vector{1, 0, 3}))
	assert.Empty(t, int64s(nil))
}

// Needs a reachable Postgres, e.g.
// SURVEY_TEST_DATABASE_URL="host=localhost port=5433 user=matchme_user password=matchme_password dbname=matchme_db sslmode=disable"
func TestWritePostgres(t *testing.T) {
	dsn := os.Getenv("SURVEY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SURVEY_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := openDB(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	p := survey.DefaultParams()
	p.Count = 5
	d, err := survey.Generate(rand.New(rand.NewSource(21)), p)
	require.NoError(t, err)

	require.NoError(t, writePostgres(ctx, db, d, false))
	defer db.Exec("DELETE FROM survey_participants WHERE run_id = $1", d.RunID.String())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM survey_participants WHERE run_id = $1", d.RunID.String()).Scan(&count))
	assert.Equal(t, 5, count)

	var traits pq.Int64Array
	var minD, maxD int
	require.NoError(t, db.QueryRow(
		"SELECT traits, min_duration, max_duration FROM survey_participants WHERE run_id = $1 AND idx = 0",
		d.RunID.String(),
	).Scan(&traits, &minD, &maxD))
	assert.Len(t, traits, 30)
	assert.LessOrEqual(t, minD, maxD)

	t.Run("Same Run Twice Rolls Back", func(t *testing.T) {
		err := writePostgres(ctx, db, d, false)
		require.Error(t, err, "primary key (run_id, idx) rejects a replay")

		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM survey_participants WHERE run_id = $1", d.RunID.String()).Scan(&count))
		assert.Equal(t, 5, count)
	})
}

func TestOpenDBUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := openDB(ctx, "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1")
	assert.Error(t, err)
}
