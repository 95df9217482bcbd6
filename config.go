package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gitea.kood.tech/petrkubec/match-me/survey/survey"
)

type cfg struct {
	DSN        string
	Count      int
	Seed       int64 // 0 picks a time-based seed
	Out        string
	ParamsFile string
	Truncate   bool
	LogMode    string
	Timeout    time.Duration
	Preview    int // rows logged after generation

	countSet bool
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFlags(args []string) (cfg, error) {
	var c cfg
	fs := flag.NewFlagSet("survey", flag.ContinueOnError)

	defCount, err := strconv.Atoi(envOr("SURVEY_COUNT", strconv.Itoa(survey.DefaultParams().Count)))
	if err != nil {
		return c, fmt.Errorf("SURVEY_COUNT: %w", err)
	}
	defSeed, err := strconv.ParseInt(envOr("SURVEY_SEED", "0"), 10, 64)
	if err != nil {
		return c, fmt.Errorf("SURVEY_SEED: %w", err)
	}

	fs.StringVar(&c.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres DSN, empty skips the database sink [env: DATABASE_URL]")
	fs.IntVar(&c.Count, "count", defCount, "Number of participants [env: SURVEY_COUNT]")
	fs.Int64Var(&c.Seed, "seed", defSeed, "RNG seed, 0 = time based [env: SURVEY_SEED]")
	fs.StringVar(&c.Out, "out", envOr("SURVEY_OUT", "BC2410-student-survey.csv"), "CSV output path, empty skips the CSV sink [env: SURVEY_OUT]")
	fs.StringVar(&c.ParamsFile, "params", os.Getenv("SURVEY_PARAMS"), "YAML file overriding the default distributions [env: SURVEY_PARAMS]")
	fs.BoolVar(&c.Truncate, "truncate", false, "TRUNCATE survey_participants before inserting")
	fs.StringVar(&c.LogMode, "log-mode", envOr("LOG_MODE", "dev"), "dev or prod logging [env: LOG_MODE]")
	fs.DurationVar(&c.Timeout, "timeout", 5*time.Minute, "Deadline for writing all sinks")
	fs.IntVar(&c.Preview, "preview", 5, "Log the first N generated rows, 0 disables")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	// an empty SURVEY_COUNT counts as unset, the same way envOr reads it
	c.countSet = os.Getenv("SURVEY_COUNT") != ""
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "count" {
			c.countSet = true
		}
	})

	if c.Out == "" && c.DSN == "" {
		return c, fmt.Errorf("nothing to write: set --out or --dsn")
	}
	if c.Preview < 0 {
		return c, fmt.Errorf("--preview must not be negative")
	}
	if c.Timeout <= 0 {
		return c, fmt.Errorf("--timeout must be positive")
	}
	return c, nil
}

// params resolves the generation parameters: defaults, then the YAML file,
// then an explicit --count.
func (c cfg) params() (survey.Params, error) {
	p := survey.DefaultParams()
	if c.ParamsFile != "" {
		var err error
		if p, err = survey.LoadParams(c.ParamsFile); err != nil {
			return p, err
		}
	}
	if c.countSet {
		p.Count = c.Count
	}
	return p, p.Validate()
}
