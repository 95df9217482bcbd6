package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedact(t *testing.T) {
	in := []interface{}{"dsn", "postgres://u:secret@db/x", "rows", 5, "DB_PASSWORD", "pw"}
	out := redact(in)
	assert.Equal(t, []interface{}{"dsn", "[REDACTED]", "rows", 5, "DB_PASSWORD", "[REDACTED]"}, out)
	assert.Equal(t, "postgres://u:secret@db/x", in[1], "input is left alone")

	assert.Equal(t, []interface{}{"dangling"}, redact([]interface{}{"dangling"}))
	assert.Empty(t, redact(nil))
}

func TestNewLogger(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		log, err := newLogger(mode)
		require.NoError(t, err, mode)
		log.With("run_id", "x").Debug("hello", "k", 1)
	}
}
