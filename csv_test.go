package main

import (
	"bytes"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitea.kood.tech/petrkubec/match-me/survey/survey"
)

func TestFormatCell(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"Int", 42, "42"},
		{"Float", 0.37, "0.37"},
		{"Whole Float", 1.0, "1.0"},
		{"Zero Float", 0.0, "0.0"},
		{"Vector", survey.Vector{1, 0, 0}, "[1, 0, 0]"},
		{"Rankings", []float64{0.3, 0.7, 0}, "[0.3, 0.7, 0.0]"},
		{"Calendar", survey.Calendar{{1, 0}, {0, 1}}, "[[1, 0], [0, 1]]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formatCell(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := formatCell("text")
	assert.Error(t, err)
}

func TestEncodeCSV(t *testing.T) {
	p := survey.DefaultParams()
	p.Count = 3
	d, err := survey.Generate(rand.New(rand.NewSource(4)), p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encodeCSV(&buf, d))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"0", "1", "2"}, []string{records[1][0], records[2][0], records[3][0]})

	first := d.Profiles()[0]
	assert.Equal(t, first.Gender.String(), records[1][3])
	assert.Equal(t, first.Traits.String(), records[1][9])
}

func TestWriteCSVMissingDir(t *testing.T) {
	p := survey.DefaultParams()
	p.Count = 1
	d, err := survey.Generate(rand.New(rand.NewSource(4)), p)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	assert.Error(t, writeCSV(path, d))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
