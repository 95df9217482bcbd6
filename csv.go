package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gitea.kood.tech/petrkubec/match-me/survey/survey"
)

// writeCSV writes the dataset to path. Rows go to a temp file in the same
// directory which is renamed into place only after a clean close.
func writeCSV(path string, d *survey.Dataset) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp csv: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = encodeCSV(f, d); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("rename csv: %w", err)
	}
	return nil
}

// encodeCSV lays the dataset out like a pandas frame dump: an unnamed index
// column first, list values as "[a, b]".
func encodeCSV(w io.Writer, d *survey.Dataset) error {
	cw := csv.NewWriter(w)
	cols := d.Columns()

	header := append([]string{""}, cols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(header))
	for i := 0; i < d.Len(); i++ {
		record[0] = strconv.Itoa(i)
		for j, name := range cols {
			cell, err := formatCell(d.Column(name)[i])
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", i, name, err)
			}
			record[j+1] = cell
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) (string, error) {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t), nil
	case float64:
		return formatFloat(t), nil
	case survey.Vector:
		return t.String(), nil
	case []float64:
		parts := make([]string, len(t))
		for i, f := range t {
			parts[i] = formatFloat(f)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case survey.Calendar:
		days := make([]string, len(t))
		for i, day := range t {
			days[i] = survey.Vector(day).String()
		}
		return "[" + strings.Join(days, ", ") + "]", nil
	default:
		return "", fmt.Errorf("unsupported cell type %T", v)
	}
}

// formatFloat keeps a trailing ".0" on whole numbers, so 1 reads as 1.0.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
