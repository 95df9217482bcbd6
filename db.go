package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq" // PostgreSQL driver

	"gitea.kood.tech/petrkubec/match-me/survey/survey"
)

const createParticipantsTable = `
	CREATE TABLE IF NOT EXISTS survey_participants (
		run_id          UUID NOT NULL,
		idx             INTEGER NOT NULL,
		age             INTEGER NOT NULL,
		gap             INTEGER NOT NULL,
		gender          INTEGER[] NOT NULL,
		preferences     INTEGER[] NOT NULL,
		interests       INTEGER[] NOT NULL,
		seriousness     DOUBLE PRECISION NOT NULL,
		similarity_pref DOUBLE PRECISION NOT NULL,
		rankings        DOUBLE PRECISION[] NOT NULL,
		traits          INTEGER[] NOT NULL,
		traits_pref     INTEGER[] NOT NULL,
		budget          INTEGER NOT NULL,
		min_duration    INTEGER NOT NULL,
		max_duration    INTEGER NOT NULL CHECK (min_duration <= max_duration),
		max_distance    INTEGER NOT NULL,
		calendar        JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (run_id, idx)
	)`

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("reach database: %w", err)
	}
	return db, nil
}

// writePostgres stores the dataset in one transaction. Any failure rolls the
// whole run back, so a run is either fully present or absent.
func writePostgres(ctx context.Context, db *sql.DB, d *survey.Dataset, truncate bool) (err error) {
	if _, err := db.ExecContext(ctx, createParticipantsTable); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if truncate {
		if _, err = tx.ExecContext(ctx, `TRUNCATE TABLE survey_participants`); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	}
	if err = insertParticipants(ctx, tx, d); err != nil {
		return fmt.Errorf("insert participants: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, d *survey.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_participants (
			run_id, idx, age, gap, gender, preferences, interests, seriousness, similarity_pref,
			rankings, traits, traits_pref, budget, min_duration, max_duration, max_distance, calendar
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17
		)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	runID := d.RunID.String()
	for i, p := range d.Profiles() {
		calendar, err := json.Marshal(p.Calendar)
		if err != nil {
			return fmt.Errorf("encode calendar for row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			runID, i, p.Age, p.Gap,
			pq.Array(int64s(p.Gender)), pq.Array(int64s(p.Preferences)), pq.Array(int64s(p.Interests)),
			p.Seriousness, p.SimilarityPref, pq.Array(p.Rankings),
			pq.Array(int64s(p.Traits)), pq.Array(int64s(p.TraitsPref)),
			p.Budget, p.MinDuration, p.MaxDuration, p.MaxDistance, string(calendar),
		); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}

// int64s widens a vector for pq.Array, which has no []int support.
func int64s(v survey.Vector) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return out
}
