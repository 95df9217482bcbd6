package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"gitea.kood.tech/petrkubec/match-me/survey/survey"
)

// REMINDER: matching the generated participants is NP-hard and runs elsewhere.
// Keep --count small (50 was the largest tried without a GPU).

func main() {
	c, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := newLogger(c.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	if err := run(ctx, c, log); err != nil {
		log.Fatal("survey generation failed", "error", err)
	}
	log.Info("Survey data generated ✅")
}

// run generates the dataset and hands it to every configured sink. A bad
// parameter set fails before any sink is opened.
func run(ctx context.Context, c cfg, log *Logger) error {
	p, err := c.params()
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	log.Info("Populating data...", "participants", p.Count, "seed", seed)
	d, err := survey.Generate(r, p)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	log = log.With("run_id", d.RunID.String())
	log.Info("Generated participants", "rows", d.Len(), "columns", len(d.Columns()))
	log.Debug("Column layout", "columns", d.Columns())
	previewRows(log, d, c.Preview)

	g, gctx := errgroup.WithContext(ctx)
	if c.Out != "" {
		g.Go(func() error {
			if err := writeCSV(c.Out, d); err != nil {
				log.Error("csv sink failed", "path", c.Out, "error", err)
				return fmt.Errorf("csv sink: %w", err)
			}
			log.Info("Wrote csv", "path", c.Out)
			return nil
		})
	} else {
		log.Warn("Skipping csv sink", "reason", "--out is empty")
	}
	if c.DSN != "" {
		g.Go(func() error {
			if err := savePostgres(gctx, c.DSN, d, c.Truncate); err != nil {
				log.Error("postgres sink failed", "error", err)
				return fmt.Errorf("postgres sink: %w", err)
			}
			log.Info("Wrote postgres", "table", "survey_participants", "truncated", c.Truncate)
			return nil
		})
	} else {
		log.Warn("Skipping postgres sink", "reason", "--dsn and DATABASE_URL are empty")
	}
	return g.Wait()
}

func savePostgres(ctx context.Context, dsn string, d *survey.Dataset, truncate bool) error {
	db, err := openDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return writePostgres(ctx, db, d, truncate)
}

// previewRows logs the first n rows the way they will appear in the csv.
func previewRows(log *Logger, d *survey.Dataset, n int) {
	n = min(n, d.Len())
	for i := 0; i < n; i++ {
		kv := make([]interface{}, 0, 2*len(d.Columns())+2)
		kv = append(kv, "row", i)
		for _, name := range d.Columns() {
			cell, err := formatCell(d.Column(name)[i])
			if err != nil {
				cell = fmt.Sprint(d.Column(name)[i])
			}
			kv = append(kv, name, cell)
		}
		log.Info("Participant", kv...)
	}
}
